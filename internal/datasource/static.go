package datasource

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/helpers"
)

//go:embed fixtures/static.json
var fixtureJSON []byte

type fixtureSet struct {
	Cards        []dto.RawCard        `json:"cards"`
	Transactions []dto.RawTransaction `json:"transactions"`
	Goals        []dto.RawGoal        `json:"goals"`
	Tasks        []dto.RawTask        `json:"tasks"`
}

// Static is an in-memory Finance API stand-in seeded from embedded
// fixtures. It applies the obvious balance effects of a new transaction so
// the UI stays coherent, nothing more.
type Static struct {
	mu    sync.RWMutex
	now   func() time.Time
	cards []dto.RawCard
	txs   []dto.RawTransaction
	goals []dto.RawGoal
	tasks []dto.RawTask
}

// NewStatic loads the fixtures. Transaction dates are shifted by whole days
// so the newest one falls on today and the charts have something to show.
func NewStatic(now func() time.Time) (*Static, error) {
	var set fixtureSet
	if err := json.Unmarshal(fixtureJSON, &set); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	s := &Static{
		now:   now,
		cards: set.Cards,
		txs:   set.Transactions,
		goals: set.Goals,
		tasks: set.Tasks,
	}
	s.rebaseDates(now())
	return s, nil
}

func (s *Static) rebaseDates(now time.Time) {
	var newest time.Time
	for _, tx := range s.txs {
		if d, err := time.Parse(time.DateOnly, tx.Date); err == nil && d.After(newest) {
			newest = d
		}
	}
	if newest.IsZero() {
		return
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	shift := int(today.Sub(newest).Hours() / 24)
	for i, tx := range s.txs {
		if d, err := time.Parse(time.DateOnly, tx.Date); err == nil {
			s.txs[i].Date = d.AddDate(0, 0, shift).Format(time.DateOnly)
		}
	}
}

// newID mimics the 24 character ids of the Finance API.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func idOf(mongoID, id string) string {
	if mongoID != "" {
		return mongoID
	}
	return id
}

func (s *Static) cardIndex(id string) int {
	return slices.IndexFunc(s.cards, func(c dto.RawCard) bool { return idOf(c.MongoID, c.ID) == id })
}

// --- Cards ---

func (s *Static) ListCards(_ context.Context) ([]dto.RawCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cards), nil
}

func (s *Static) GetCard(_ context.Context, id string) (dto.RawCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.cardIndex(id)
	if i < 0 {
		return dto.RawCard{}, errs.NewNotFoundError("card not found")
	}
	return s.cards[i], nil
}

func (s *Static) CreateCard(_ context.Context, req dto.CardRequest) (dto.RawCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card := cardFromRequest(newID(), req)
	s.cards = append(s.cards, card)
	return card, nil
}

func (s *Static) UpdateCard(_ context.Context, id string, req dto.CardRequest) (dto.RawCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cardIndex(id)
	if i < 0 {
		return dto.RawCard{}, errs.NewNotFoundError("card not found")
	}
	s.cards[i] = cardFromRequest(id, req)
	return s.cards[i], nil
}

func (s *Static) DeleteCard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cardIndex(id)
	if i < 0 {
		return errs.NewNotFoundError("card not found")
	}
	s.cards = slices.Delete(s.cards, i, i+1)
	return nil
}

func cardFromRequest(id string, req dto.CardRequest) dto.RawCard {
	return dto.RawCard{
		MongoID:          id,
		AccountName:      req.AccountName,
		Icon:             req.Icon,
		AvailableBalance: dto.FlexFloat(req.AvailableBalance),
		InitialBalance:   dto.FlexFloat(req.InitialBalance),
		TargetBalance:    dto.FlexFloat(req.TargetBalance),
		CardType:         req.CardType,
		Currency:         req.Currency,
	}
}

// --- Transactions ---

func (s *Static) CreateTransaction(_ context.Context, cardID string, req dto.CreateTransactionRequest) (dto.RawTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cardIndex(cardID)
	if i < 0 {
		return dto.RawTransaction{}, errs.NewNotFoundError("card not found")
	}

	delta := dto.FlexFloat(req.Amount)
	if req.Type == string(models.TypeExpense) {
		delta = -delta
	}
	s.cards[i].AvailableBalance += delta

	tx := dto.RawTransaction{
		MongoID:   newID(),
		Title:     req.Title,
		Category:  req.Category,
		Remark:    req.Remark,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		Amount:    dto.FlexFloat(req.Amount),
		Type:      req.Type,
		Status:    string(models.StatusCompleted),
		CardID:    cardID,
		Card:      &dto.RawCardRef{ID: cardID, AccountName: s.cards[i].AccountName},
	}
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *Static) ListTransactions(_ context.Context) ([]dto.RawTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.txs), nil
}

func (s *Static) ListCardTransactions(_ context.Context, cardID string) ([]dto.RawTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.RawTransaction, 0)
	for _, tx := range s.txs {
		if tx.CardID == cardID || (tx.Card != nil && tx.Card.ID == cardID) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Static) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.txs, func(tx dto.RawTransaction) bool { return idOf(tx.MongoID, tx.ID) == id })
	if i < 0 {
		return errs.NewNotFoundError("transaction not found")
	}
	s.txs = slices.Delete(s.txs, i, i+1)
	return nil
}

// --- Goals ---

func (s *Static) goalIndex(id string) int {
	return slices.IndexFunc(s.goals, func(g dto.RawGoal) bool { return idOf(g.MongoID, g.ID) == id })
}

func (s *Static) ListGoals(_ context.Context) ([]dto.RawGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.goals), nil
}

func (s *Static) CreateGoal(_ context.Context, req dto.GoalRequest) (dto.RawGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := dto.RawGoal{
		MongoID:  newID(),
		Title:    req.Title,
		Target:   dto.FlexFloat(req.Target),
		Current:  dto.FlexFloat(req.Current),
		Deadline: req.Deadline,
		Priority: req.Priority,
	}
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *Static) UpdateGoal(_ context.Context, id string, patch map[string]any) (dto.RawGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.goalIndex(id)
	if i < 0 {
		return dto.RawGoal{}, errs.NewNotFoundError("goal not found")
	}
	if v, ok := patch["completed"].(bool); ok {
		s.goals[i].Completed = v
	}
	if v, ok := patch["title"].(string); ok {
		s.goals[i].Title = v
	}
	return s.goals[i], nil
}

func (s *Static) AddMoney(_ context.Context, id string, amount float64) (dto.RawGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.goalIndex(id)
	if i < 0 {
		return dto.RawGoal{}, errs.NewNotFoundError("goal not found")
	}
	s.goals[i].Current += dto.FlexFloat(amount)
	return s.goals[i], nil
}

// --- Tasks & planner ---

func (s *Static) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t dto.RawTask) bool { return idOf(t.MongoID, t.ID) == id })
}

func (s *Static) ListTasks(_ context.Context) ([]dto.RawTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks), nil
}

func (s *Static) CreateTask(_ context.Context, req dto.TaskRequest) (dto.RawTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := dto.RawTask{MongoID: newID(), Name: req.Name, Incentive: req.Incentive, Order: helpers.ValueOr(req.Order, len(s.tasks))}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Static) UpdateTask(_ context.Context, id string, req dto.TaskRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return errs.NewNotFoundError("task not found")
	}
	if req.Name != "" {
		s.tasks[i].Name = req.Name
		s.tasks[i].Incentive = req.Incentive
	}
	s.tasks[i].Order = helpers.ValueOr(req.Order, s.tasks[i].Order)
	return nil
}

func (s *Static) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return errs.NewNotFoundError("task not found")
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// PlannerHistory is always empty: planner toggles live in the local cache.
func (s *Static) PlannerHistory(_ context.Context) ([]models.HistoryRecord, error) {
	return []models.HistoryRecord{}, nil
}
