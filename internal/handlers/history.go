package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type HistoryService interface {
	Query(ctx context.Context, q dto.HistoryQuery) (dto.HistoryPage, error)
	Delete(ctx context.Context, id string) error
}

type historyHandlers struct {
	ResponseHandler response.ResponseHandler
	HistorySvc      HistoryService
}

func NewHistoryHandlers(deps *Deps) *historyHandlers {
	return &historyHandlers{
		ResponseHandler: deps.ResponseHandler,
		HistorySvc:      deps.HistorySvc,
	}
}

func (h *historyHandlers) HistoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetHistory)
	r.Delete("/{transactionId}", h.DeleteTransaction)
	return r
}

// GetHistory reads search, type, category, status, range, sort, order,
// page and pageSize from the query string.
func (h *historyHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt(r, "page", 1)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	pageSize, err := queryInt(r, "pageSize", 0)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result, err := h.HistorySvc.Query(r.Context(), dto.HistoryQuery{
		Filter: dto.TransactionFilter{
			Type:       q.Get("type"),
			Category:   q.Get("category"),
			Status:     q.Get("status"),
			DateRange:  q.Get("range"),
			SearchTerm: q.Get("search"),
		},
		Sort: dto.SortSpec{
			Key:   dto.SortKey(q.Get("sort")),
			Order: dto.SortOrder(q.Get("order")),
		},
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *historyHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	if err := h.HistorySvc.Delete(r.Context(), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
