package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type PlannerService interface {
	Day(ctx context.Context, date string) (dto.PlannerDay, error)
	Toggle(ctx context.Context, req dto.ToggleRequest) (dto.PlannerDay, error)
	Claim(ctx context.Context, req dto.ClaimRequest) (models.Claim, error)
	Completions(ctx context.Context, days int) (dto.CompletionSeries, error)
}

type plannerHandlers struct {
	ResponseHandler response.ResponseHandler
	PlannerSvc      PlannerService
}

func NewPlannerHandlers(deps *Deps) *plannerHandlers {
	return &plannerHandlers{
		ResponseHandler: deps.ResponseHandler,
		PlannerSvc:      deps.PlannerSvc,
	}
}

func (h *plannerHandlers) PlannerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDay)
	r.Post("/toggle", h.Toggle)
	r.Post("/claim", h.Claim)
	r.Get("/completions", h.GetCompletions)
	return r
}

func (h *plannerHandlers) GetDay(w http.ResponseWriter, r *http.Request) {
	day, err := h.PlannerSvc.Day(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, day)
}

func (h *plannerHandlers) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	day, err := h.PlannerSvc.Toggle(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, day)
}

func (h *plannerHandlers) Claim(w http.ResponseWriter, r *http.Request) {
	var req dto.ClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	claim, err := h.PlannerSvc.Claim(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, claim)
}

func (h *plannerHandlers) GetCompletions(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	series, err := h.PlannerSvc.Completions(r.Context(), days)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, series)
}
