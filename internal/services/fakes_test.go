package services

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

var testNow = time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() Clock { return func() time.Time { return testNow } }

func unavailable() error {
	return errs.NewExternalServiceError("finance-api", 503, "upstream down", nil)
}

// --- Feeds ---

type fakeFeed[T any] struct {
	items       []T
	err         error
	invalidated int
}

func (f *fakeFeed[T]) Get(_ context.Context) ([]T, error) {
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.items), nil
}

func (f *fakeFeed[T]) Invalidate() { f.invalidated++ }

// --- Bus ---

type fakeBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *fakeBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

// --- Cache ---

type fakeCache struct {
	data   map[string][]byte
	getErr error
	putErr error
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Put(_ context.Context, key string, v any) error {
	if c.putErr != nil {
		return c.putErr
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

// --- Finance API ---

type fakeSource struct {
	mu sync.Mutex

	cards map[string]dto.RawCard
	goals []dto.RawGoal
	tasks []dto.RawTask

	listGoalsErr  error
	createTxErr   error
	deleteTxErr   error
	listTasksErr  error
	createTaskErr error
	updateTaskErr error
	deleteTaskErr error

	createdTxs   []dto.CreateTransactionRequest
	createdCards []dto.CardRequest
	deletedTxs   []string
	deletedCards []string
	goalPatches  map[string]map[string]any
	addedMoney   map[string]float64
	createdTasks []dto.TaskRequest
	updatedTasks map[string]dto.TaskRequest
	deletedTasks []string
	nextTaskID   int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		cards:        make(map[string]dto.RawCard),
		goalPatches:  make(map[string]map[string]any),
		addedMoney:   make(map[string]float64),
		updatedTasks: make(map[string]dto.TaskRequest),
	}
}

func (f *fakeSource) GetCard(_ context.Context, id string) (dto.RawCard, error) {
	c, ok := f.cards[id]
	if !ok {
		return dto.RawCard{}, errs.NewNotFoundError("card not found")
	}
	return c, nil
}

func (f *fakeSource) CreateCard(_ context.Context, req dto.CardRequest) (dto.RawCard, error) {
	f.createdCards = append(f.createdCards, req)
	c := dto.RawCard{
		MongoID:          "card000000000000000000new",
		AccountName:      req.AccountName,
		CardType:         req.CardType,
		Currency:         req.Currency,
		InitialBalance:   dto.FlexFloat(req.InitialBalance),
		AvailableBalance: dto.FlexFloat(req.AvailableBalance),
		TargetBalance:    dto.FlexFloat(req.TargetBalance),
	}
	return c, nil
}

func (f *fakeSource) UpdateCard(_ context.Context, id string, req dto.CardRequest) (dto.RawCard, error) {
	if _, ok := f.cards[id]; !ok {
		return dto.RawCard{}, errs.NewNotFoundError("card not found")
	}
	c := dto.RawCard{MongoID: id, AccountName: req.AccountName, CardType: req.CardType}
	f.cards[id] = c
	return c, nil
}

func (f *fakeSource) DeleteCard(_ context.Context, id string) error {
	f.deletedCards = append(f.deletedCards, id)
	return nil
}

func (f *fakeSource) CreateTransaction(_ context.Context, cardID string, req dto.CreateTransactionRequest) (dto.RawTransaction, error) {
	if f.createTxErr != nil {
		return dto.RawTransaction{}, f.createTxErr
	}
	f.createdTxs = append(f.createdTxs, req)
	return dto.RawTransaction{
		MongoID:   "tx0000000000000000000001",
		Title:     req.Title,
		Category:  req.Category,
		Amount:    dto.FlexFloat(req.Amount),
		Type:      req.Type,
		CreatedAt: testNow.Format(time.RFC3339),
		CardID:    cardID,
	}, nil
}

func (f *fakeSource) ListCardTransactions(_ context.Context, cardID string) ([]dto.RawTransaction, error) {
	return []dto.RawTransaction{
		{MongoID: "a", CardID: cardID, Amount: 5, Type: "expense", Date: "2025-01-10"},
		{MongoID: "b", CardID: cardID, Amount: 7, Type: "income", Date: "2025-01-14"},
	}, nil
}

func (f *fakeSource) DeleteTransaction(_ context.Context, id string) error {
	if f.deleteTxErr != nil {
		return f.deleteTxErr
	}
	f.deletedTxs = append(f.deletedTxs, id)
	return nil
}

func (f *fakeSource) ListGoals(_ context.Context) ([]dto.RawGoal, error) {
	if f.listGoalsErr != nil {
		return nil, f.listGoalsErr
	}
	return slices.Clone(f.goals), nil
}

func (f *fakeSource) CreateGoal(_ context.Context, req dto.GoalRequest) (dto.RawGoal, error) {
	return dto.RawGoal{MongoID: "goal", Title: req.Title, Target: dto.FlexFloat(req.Target), Current: dto.FlexFloat(req.Current), Priority: req.Priority}, nil
}

func (f *fakeSource) UpdateGoal(_ context.Context, id string, patch map[string]any) (dto.RawGoal, error) {
	f.goalPatches[id] = patch
	for _, g := range f.goals {
		if g.MongoID == id {
			if done, ok := patch["completed"].(bool); ok {
				g.Completed = done
			}
			return g, nil
		}
	}
	return dto.RawGoal{}, errs.NewNotFoundError("goal not found")
}

func (f *fakeSource) AddMoney(_ context.Context, id string, amount float64) (dto.RawGoal, error) {
	f.addedMoney[id] += amount
	for _, g := range f.goals {
		if g.MongoID == id {
			g.Current += dto.FlexFloat(amount)
			return g, nil
		}
	}
	return dto.RawGoal{}, errs.NewNotFoundError("goal not found")
}

func (f *fakeSource) ListTasks(_ context.Context) ([]dto.RawTask, error) {
	if f.listTasksErr != nil {
		return nil, f.listTasksErr
	}
	return slices.Clone(f.tasks), nil
}

func (f *fakeSource) CreateTask(_ context.Context, req dto.TaskRequest) (dto.RawTask, error) {
	if f.createTaskErr != nil {
		return dto.RawTask{}, f.createTaskErr
	}
	f.createdTasks = append(f.createdTasks, req)
	f.nextTaskID++
	t := dto.RawTask{MongoID: serverTaskID(f.nextTaskID), Name: req.Name, Incentive: req.Incentive}
	if req.Order != nil {
		t.Order = *req.Order
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeSource) UpdateTask(_ context.Context, id string, req dto.TaskRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateTaskErr != nil {
		return f.updateTaskErr
	}
	f.updatedTasks[id] = req
	return nil
}

func (f *fakeSource) DeleteTask(_ context.Context, id string) error {
	if f.deleteTaskErr != nil {
		return f.deleteTaskErr
	}
	f.deletedTasks = append(f.deletedTasks, id)
	return nil
}

// serverTaskID builds a 24 character id like the Finance API hands out.
func serverTaskID(n int) string {
	const base = "aaaaaaaaaaaaaaaaaaaaaa"
	return base + string(rune('0'+n/10%10)) + string(rune('0'+n%10))
}

type fakeSelection struct{ forgotten []string }

func (f *fakeSelection) Forget(cardID string) { f.forgotten = append(f.forgotten, cardID) }

func tx(id string, typ models.TransactionType, amount float64, category string, date time.Time) models.Transaction {
	return models.Transaction{
		ID:       id,
		Title:    id,
		Category: category,
		Date:     date,
		Amount:   amount,
		Type:     typ,
		Status:   models.StatusCompleted,
	}
}
