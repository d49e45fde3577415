package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/response"
)

type CardService interface {
	List(ctx context.Context) ([]dto.CardView, error)
	Get(ctx context.Context, id string) (dto.CardView, error)
	Create(ctx context.Context, req dto.CardRequest) (dto.CardView, error)
	Update(ctx context.Context, id string, req dto.CardRequest) (dto.CardView, error)
	Delete(ctx context.Context, id string) error
	CreateTransaction(ctx context.Context, cardID string, req dto.CreateTransactionRequest) (models.Transaction, error)
	Transactions(ctx context.Context, cardID string) ([]models.Transaction, error)
}

type cardHandlers struct {
	ResponseHandler response.ResponseHandler
	CardSvc         CardService
}

func NewCardHandlers(deps *Deps) *cardHandlers {
	return &cardHandlers{
		ResponseHandler: deps.ResponseHandler,
		CardSvc:         deps.CardSvc,
	}
}

func (h *cardHandlers) CardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCards)
	r.Post("/", h.CreateCard)
	r.Get("/{cardId}", h.GetCard)
	r.Put("/{cardId}", h.UpdateCard)
	r.Delete("/{cardId}", h.DeleteCard)
	r.Post("/{cardId}/transaction", h.CreateTransaction)
	r.Get("/{cardId}/transactions", h.ListTransactions)
	return r
}

func (h *cardHandlers) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.CardSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cards)
}

func (h *cardHandlers) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.CardSvc.Get(r.Context(), chi.URLParam(r, "cardId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, card)
}

func (h *cardHandlers) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req dto.CardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	card, err := h.CardSvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, card)
}

func (h *cardHandlers) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req dto.CardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	card, err := h.CardSvc.Update(r.Context(), chi.URLParam(r, "cardId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, card)
}

func (h *cardHandlers) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.CardSvc.Delete(r.Context(), chi.URLParam(r, "cardId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *cardHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	tx, err := h.CardSvc.CreateTransaction(r.Context(), chi.URLParam(r, "cardId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *cardHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.CardSvc.Transactions(r.Context(), chi.URLParam(r, "cardId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}
