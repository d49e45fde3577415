package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type SelectionService interface {
	Get(ctx context.Context, session string) dto.Selection
	Select(ctx context.Context, session, cardID string) (dto.Selection, error)
}

type selectionHandlers struct {
	ResponseHandler response.ResponseHandler
	SelectionSvc    SelectionService
}

func NewSelectionHandlers(deps *Deps) *selectionHandlers {
	return &selectionHandlers{
		ResponseHandler: deps.ResponseHandler,
		SelectionSvc:    deps.SelectionSvc,
	}
}

func (h *selectionHandlers) SelectionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSelection)
	r.Put("/", h.PutSelection)
	return r
}

func (h *selectionHandlers) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel := h.SelectionSvc.Get(r.Context(), r.Header.Get(SessionHeader))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, sel)
}

func (h *selectionHandlers) PutSelection(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectCardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	sel, err := h.SelectionSvc.Select(r.Context(), r.Header.Get(SessionHeader), req.CardID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, sel)
}
