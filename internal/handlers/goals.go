package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type GoalService interface {
	List(ctx context.Context) ([]dto.GoalView, error)
	Create(ctx context.Context, req dto.GoalRequest) (dto.GoalView, error)
	AddMoney(ctx context.Context, id string, amount float64) (dto.GoalView, error)
	Complete(ctx context.Context, id string) (dto.GoalView, error)
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         GoalService
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGoals)
	r.Post("/", h.CreateGoal)
	r.Post("/{goalId}/add-money", h.AddMoney)
	r.Post("/{goalId}/complete", h.CompleteGoal)
	return r
}

func (h *goalHandlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.GoalSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goals)
}

func (h *goalHandlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.GoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goal, err := h.GoalSvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMoneyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goal, err := h.GoalSvc.AddMoney(r.Context(), chi.URLParam(r, "goalId"), req.Amount)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.GoalSvc.Complete(r.Context(), chi.URLParam(r, "goalId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}
