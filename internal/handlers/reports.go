package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type ReportService interface {
	Report(ctx context.Context, period string) (dto.ReportResponse, error)
}

type reportHandlers struct {
	ResponseHandler response.ResponseHandler
	ReportSvc       ReportService
}

func NewReportHandlers(deps *Deps) *reportHandlers {
	return &reportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReportSvc:       deps.ReportSvc,
	}
}

func (h *reportHandlers) ReportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetReport)
	return r
}

func (h *reportHandlers) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.ReportSvc.Report(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, report)
}
