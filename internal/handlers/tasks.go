package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type TaskService interface {
	List(ctx context.Context) (dto.TaskList, error)
	Create(ctx context.Context, req dto.TaskRequest) (models.Task, error)
	Update(ctx context.Context, id string, req dto.TaskRequest) (models.Task, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id, direction string) (dto.TaskList, error)
}

type taskHandlers struct {
	ResponseHandler response.ResponseHandler
	TaskSvc         TaskService
}

func NewTaskHandlers(deps *Deps) *taskHandlers {
	return &taskHandlers{
		ResponseHandler: deps.ResponseHandler,
		TaskSvc:         deps.TaskSvc,
	}
}

func (h *taskHandlers) TaskRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTasks)
	r.Post("/", h.CreateTask)
	r.Patch("/{taskId}", h.UpdateTask)
	r.Delete("/{taskId}", h.DeleteTask)
	r.Post("/{taskId}/move", h.MoveTask)
	return r
}

func (h *taskHandlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.TaskSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *taskHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.TaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	task, err := h.TaskSvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, task)
}

func (h *taskHandlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.TaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	task, err := h.TaskSvc.Update(r.Context(), chi.URLParam(r, "taskId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, task)
}

func (h *taskHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskSvc.Delete(r.Context(), chi.URLParam(r, "taskId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *taskHandlers) MoveTask(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	list, err := h.TaskSvc.Move(r.Context(), chi.URLParam(r, "taskId"), req.Direction)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}
