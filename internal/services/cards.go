package services

import (
	"context"
	"math"
	"strings"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

const defaultCurrency = "USD"

// cardSource is the slice of the Finance API used for cards and their
// transactions.
type cardSource interface {
	GetCard(ctx context.Context, id string) (dto.RawCard, error)
	CreateCard(ctx context.Context, req dto.CardRequest) (dto.RawCard, error)
	UpdateCard(ctx context.Context, id string, req dto.CardRequest) (dto.RawCard, error)
	DeleteCard(ctx context.Context, id string) error
	CreateTransaction(ctx context.Context, cardID string, req dto.CreateTransactionRequest) (dto.RawTransaction, error)
	ListCardTransactions(ctx context.Context, cardID string) ([]dto.RawTransaction, error)
}

type selectionForgetter interface {
	Forget(cardID string)
}

type cardService struct {
	source    cardSource
	cards     cardFeed
	bus       publisher
	selection selectionForgetter
	now       Clock
}

func NewCardService(source cardSource, cards cardFeed, bus publisher, selection selectionForgetter, now Clock) *cardService {
	return &cardService{source: source, cards: cards, bus: bus, selection: selection, now: now}
}

func (s *cardService) List(ctx context.Context) ([]dto.CardView, error) {
	cards, err := s.cards.Get(ctx)
	if err != nil {
		return nil, err
	}
	return cardViews(cards), nil
}

func (s *cardService) Get(ctx context.Context, id string) (dto.CardView, error) {
	raw, err := s.source.GetCard(ctx, id)
	if err != nil {
		return dto.CardView{}, err
	}
	return cardView(analytics.NormalizeCard(raw)), nil
}

// Create starts a card with its available balance equal to the initial one.
func (s *cardService) Create(ctx context.Context, req dto.CardRequest) (dto.CardView, error) {
	req, err := validateCard(req)
	if err != nil {
		return dto.CardView{}, err
	}
	req.AvailableBalance = req.InitialBalance

	raw, err := s.source.CreateCard(ctx, req)
	if err != nil {
		return dto.CardView{}, err
	}
	s.cards.Invalidate()
	card := analytics.NormalizeCard(raw)
	logger.FromContext(ctx).Info("card created", "cardId", card.ID, "cardType", card.CardType)
	return cardView(card), nil
}

func (s *cardService) Update(ctx context.Context, id string, req dto.CardRequest) (dto.CardView, error) {
	req, err := validateCard(req)
	if err != nil {
		return dto.CardView{}, err
	}
	raw, err := s.source.UpdateCard(ctx, id, req)
	if err != nil {
		return dto.CardView{}, err
	}
	s.cards.Invalidate()
	return cardView(analytics.NormalizeCard(raw)), nil
}

func (s *cardService) Delete(ctx context.Context, id string) error {
	if err := s.source.DeleteCard(ctx, id); err != nil {
		return err
	}
	s.cards.Invalidate()
	s.selection.Forget(id)
	logger.FromContext(ctx).Info("card deleted", "cardId", id)
	return nil
}

func validateCard(req dto.CardRequest) (dto.CardRequest, error) {
	req.AccountName = strings.TrimSpace(req.AccountName)
	if req.AccountName == "" {
		return req, errs.NewValidationError("account name is required")
	}
	if !models.CardType(req.CardType).Valid() {
		return req, errs.NewValidationError("unknown card type: " + req.CardType)
	}
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	for _, v := range []float64{req.InitialBalance, req.TargetBalance, req.AvailableBalance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return req, errs.NewValidationError("balances must be finite numbers")
		}
	}
	return req, nil
}

// CreateTransaction validates locally before anything is sent upstream:
// the amount must be positive and an expense may not overdraw a card
// unless it is a credit card.
func (s *cardService) CreateTransaction(ctx context.Context, cardID string, req dto.CreateTransactionRequest) (models.Transaction, error) {
	switch models.TransactionType(req.Type) {
	case models.TypeIncome, models.TypeExpense, models.TypeReward:
	default:
		return models.Transaction{}, errs.NewValidationError("unknown transaction type: " + req.Type)
	}
	if !positive(req.Amount) {
		return models.Transaction{}, errs.NewValidationError("amount must be greater than zero")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = analytics.DefaultCategory
	}

	raw, err := s.source.GetCard(ctx, cardID)
	if err != nil {
		return models.Transaction{}, err
	}
	card := analytics.NormalizeCard(raw)
	if req.Type == string(models.TypeExpense) && card.CardType != models.CardCredit && req.Amount > card.AvailableBalance {
		return models.Transaction{}, errs.NewValidationError("insufficient balance on " + card.AccountName)
	}

	created, err := s.source.CreateTransaction(ctx, cardID, req)
	if err != nil {
		return models.Transaction{}, err
	}
	tx := analytics.NormalizeOne(created, s.now())
	if tx.CardID == "" {
		tx.CardID = cardID
	}

	logger.FromContext(ctx).Info("transaction created",
		"transactionId", tx.ID,
		"cardId", cardID,
		"type", tx.Type)
	s.bus.Publish(ctx, events.Event{Topic: events.TransactionCreated, TransactionID: tx.ID, CardID: cardID})
	return tx, nil
}

// Transactions lists one card's transactions, newest first.
func (s *cardService) Transactions(ctx context.Context, cardID string) ([]models.Transaction, error) {
	raw, err := s.source.ListCardTransactions(ctx, cardID)
	if err != nil {
		return nil, err
	}
	txs := analytics.Normalize(raw, s.now())
	return analytics.Sort(txs, dto.SortSpec{Key: dto.SortByDate, Order: dto.SortDesc}), nil
}
