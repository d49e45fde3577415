package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type DashboardService interface {
	Weekly(ctx context.Context, excludeRewards bool) (dto.WeeklyReport, error)
	Recent(ctx context.Context, limit int) ([]models.Transaction, error)
	Summary(ctx context.Context) (dto.DashboardSummary, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/weekly", h.GetWeekly)
	r.Get("/recent", h.GetRecent)
	r.Get("/summary", h.GetSummary)
	return r
}

func (h *dashboardHandlers) GetWeekly(w http.ResponseWriter, r *http.Request) {
	exclude, err := queryBool(r, "excludeRewards")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	report, err := h.DashboardSvc.Weekly(r.Context(), exclude)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, report)
}

func (h *dashboardHandlers) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	txs, err := h.DashboardSvc.Recent(r.Context(), limit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *dashboardHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.DashboardSvc.Summary(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}
