package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/store"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

const (
	PlannerWindowDays = 7

	rewardCategory = "Reward"
)

type taskLister interface {
	List(ctx context.Context) (dto.TaskList, error)
}

// historyFeed is the remote planner history, refreshed on transaction
// events like the other feeds.
type historyFeed interface {
	Get(ctx context.Context) ([]models.HistoryRecord, error)
}

type rewardCreator interface {
	CreateTransaction(ctx context.Context, cardID string, req dto.CreateTransactionRequest) (dto.RawTransaction, error)
}

// plannerService owns the habit history and reward claims. Toggles are
// kept in the cache and override the remote history for the same task
// and day. Claims live only in the cache.
type plannerService struct {
	tasks   taskLister
	history historyFeed
	rewards rewardCreator
	cache   kvCache
	bus     publisher
	now     Clock

	// guards history and claims read-modify-write cycles
	mu sync.Mutex
}

func NewPlannerService(tasks taskLister, history historyFeed, rewards rewardCreator, cache kvCache, bus publisher, now Clock) *plannerService {
	return &plannerService{
		tasks:   tasks,
		history: history,
		rewards: rewards,
		cache:   cache,
		bus:     bus,
		now:     now,
	}
}

func (s *plannerService) Day(ctx context.Context, date string) (dto.PlannerDay, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return dto.PlannerDay{}, err
	}
	return s.day(ctx, date)
}

// Toggle flips one task on one day.
func (s *plannerService) Toggle(ctx context.Context, req dto.ToggleRequest) (dto.PlannerDay, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return dto.PlannerDay{}, err
	}
	if strings.TrimSpace(req.TaskID) == "" {
		return dto.PlannerDay{}, errs.NewValidationError("taskId is required")
	}

	s.mu.Lock()
	merged, err := s.mergedHistory(ctx)
	if err != nil {
		s.mu.Unlock()
		return dto.PlannerDay{}, err
	}
	local, err := s.localHistory(ctx)
	if err != nil {
		s.mu.Unlock()
		return dto.PlannerDay{}, err
	}
	if local[date] == nil {
		local[date] = make(map[string]bool)
	}
	local[date][req.TaskID] = !merged.Completed(date, req.TaskID)
	err = s.cache.Put(ctx, store.HistoryKey, local)
	s.mu.Unlock()
	if err != nil {
		return dto.PlannerDay{}, err
	}

	return s.day(ctx, date)
}

// Claim redeems a day's incentives as one reward transaction on the chosen
// card. A day can be claimed once; concurrent claims are serialized so the
// second one sees the first.
func (s *plannerService) Claim(ctx context.Context, req dto.ClaimRequest) (models.Claim, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return models.Claim{}, err
	}
	cardID := strings.TrimSpace(req.CardID)
	if cardID == "" {
		return models.Claim{}, errs.NewValidationError("choose a card to charge")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.claims(ctx)
	if err != nil {
		return models.Claim{}, err
	}
	if _, ok := claims[date]; ok {
		return models.Claim{}, errs.NewAlreadyExistsError("rewards for " + date + " were already claimed")
	}

	list, err := s.tasks.List(ctx)
	if err != nil {
		return models.Claim{}, err
	}
	history, err := s.mergedHistory(ctx)
	if err != nil {
		return models.Claim{}, err
	}
	total := analytics.IncentiveTotal(list.Tasks, history[date])
	if !total.IsPositive() {
		return models.Claim{}, errs.NewValidationError("no incentive to claim")
	}

	amount := total.InexactFloat64()
	created, err := s.rewards.CreateTransaction(ctx, cardID, dto.CreateTransactionRequest{
		Type:     string(models.TypeReward),
		Amount:   amount,
		Title:    fmt.Sprintf("Claim Reward %s", date),
		Category: rewardCategory,
		Remark:   fmt.Sprintf("Claim for %s", date),
	})
	if err != nil {
		return models.Claim{}, err
	}

	claim := models.Claim{CardID: cardID, Amount: amount, At: s.now().UTC()}
	claims[date] = claim
	if err := s.cache.Put(ctx, store.ClaimsKey, claims); err != nil {
		// the reward exists upstream; losing the marker only allows a re-claim
		logger.FromContext(ctx).Error("failed to record claim", "date", date, "cardId", cardID, "error", err)
		return models.Claim{}, err
	}

	txID := analytics.NormalizeOne(created, s.now()).ID
	logger.FromContext(ctx).Info("rewards claimed",
		"date", date,
		"cardId", cardID,
		"amount", total.StringFixed(2),
		"transactionId", txID)
	s.bus.Publish(ctx, events.Event{Topic: events.TransactionCreated, TransactionID: txID, CardID: cardID})
	return claim, nil
}

// Completions is the per-day completed task count for the last days days.
func (s *plannerService) Completions(ctx context.Context, days int) (dto.CompletionSeries, error) {
	if days <= 0 {
		days = PlannerWindowDays
	}
	history, err := s.mergedHistory(ctx)
	if err != nil {
		return dto.CompletionSeries{}, err
	}
	return analytics.CompletionSeries(history, days, s.now()), nil
}

func (s *plannerService) day(ctx context.Context, date string) (dto.PlannerDay, error) {
	list, err := s.tasks.List(ctx)
	if err != nil {
		return dto.PlannerDay{}, err
	}
	history, err := s.mergedHistory(ctx)
	if err != nil {
		return dto.PlannerDay{}, err
	}
	claims, err := s.claims(ctx)
	if err != nil {
		return dto.PlannerDay{}, err
	}

	completed := make(map[string]bool)
	for _, t := range list.Tasks {
		if history.Completed(date, t.ID) {
			completed[t.ID] = true
		}
	}

	out := dto.PlannerDay{
		Date:           date,
		Tasks:          list.Tasks,
		Completed:      completed,
		TotalIncentive: analytics.IncentiveTotal(list.Tasks, completed).InexactFloat64(),
	}
	for _, d := range analytics.LastDays(PlannerWindowDays, s.now()) {
		out.Days = append(out.Days, d.Format(analytics.DateLayout))
	}
	if c, ok := claims[date]; ok {
		out.Claim = &c
		out.Claimed = true
	}
	return out, nil
}

// mergedHistory overlays local toggles on the remote history. When the
// remote history cannot be read the local one is used alone.
func (s *plannerService) mergedHistory(ctx context.Context) (models.CompletionHistory, error) {
	merged := make(models.CompletionHistory)

	records, err := s.history.Get(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("planner history unavailable, using local history", "error", err)
	}
	for _, r := range records {
		if merged[r.DateISO] == nil {
			merged[r.DateISO] = make(map[string]bool)
		}
		merged[r.DateISO][r.TaskID] = r.Completed
	}

	local, err := s.localHistory(ctx)
	if err != nil {
		return nil, err
	}
	for date, tasks := range local {
		if merged[date] == nil {
			merged[date] = make(map[string]bool)
		}
		for id, done := range tasks {
			merged[date][id] = done
		}
	}
	return merged, nil
}

func (s *plannerService) localHistory(ctx context.Context) (models.CompletionHistory, error) {
	h := make(models.CompletionHistory)
	if _, err := s.cache.Get(ctx, store.HistoryKey, &h); err != nil {
		return nil, err
	}
	if h == nil {
		h = make(models.CompletionHistory)
	}
	return h, nil
}

func (s *plannerService) claims(ctx context.Context) (models.Claims, error) {
	c := make(models.Claims)
	if _, err := s.cache.Get(ctx, store.ClaimsKey, &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = make(models.Claims)
	}
	return c, nil
}

// resolveDate defaults to today and insists on a YYYY-MM-DD day.
func (s *plannerService) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return analytics.DayKey(s.now(), nil), nil
	}
	if _, err := time.Parse(analytics.DateLayout, date); err != nil {
		return "", errs.NewValidationError("date must be YYYY-MM-DD")
	}
	return date, nil
}
