package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/selection"
)

const DefaultRecentLimit = 5

type goalLister interface {
	ListGoals(ctx context.Context) ([]dto.RawGoal, error)
}

type dashboardService struct {
	txs   transactionFeed
	cards cardFeed
	goals goalLister
	now   Clock
}

func NewDashboardService(txs transactionFeed, cards cardFeed, goals goalLister, now Clock) *dashboardService {
	return &dashboardService{txs: txs, cards: cards, goals: goals, now: now}
}

func (s *dashboardService) Weekly(ctx context.Context, excludeRewards bool) (dto.WeeklyReport, error) {
	txs, err := s.txs.Get(ctx)
	if err != nil {
		return dto.WeeklyReport{}, err
	}
	opts := analytics.Options{ExcludeRewards: excludeRewards}
	return analytics.DayBuckets(txs, analytics.DefaultWindowDays, s.now(), opts), nil
}

func (s *dashboardService) Recent(ctx context.Context, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	txs, err := s.txs.Get(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Recent(txs, limit), nil
}

// Summary loads cards, transactions and goals in parallel.
func (s *dashboardService) Summary(ctx context.Context) (dto.DashboardSummary, error) {
	var (
		cards []models.Card
		txs   []models.Transaction
		goals []dto.RawGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cards, err = s.cards.Get(gctx)
		return err
	})
	g.Go(func() (err error) {
		txs, err = s.txs.Get(gctx)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.goals.ListGoals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardSummary{}, err
	}

	now := s.now()
	out := dto.DashboardSummary{
		Cards:  cardViews(cards),
		Weekly: analytics.DayBuckets(txs, analytics.DefaultWindowDays, now, analytics.Options{}),
	}
	for _, c := range cards {
		out.TotalAssets += c.AvailableBalance
	}
	for _, goal := range analytics.NormalizeGoals(goals, now) {
		out.GoalsTotal++
		switch analytics.GoalStateOf(goal) {
		case models.GoalCompleted:
			out.GoalsDone++
		case models.GoalNearComplete:
			out.GoalsNear++
		}
	}
	return out, nil
}

func cardViews(cards []models.Card) []dto.CardView {
	out := make([]dto.CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardView(c))
	}
	return out
}

func cardView(c models.Card) dto.CardView {
	return dto.CardView{
		Card:     c,
		Progress: analytics.CardProgress(c),
		Theme:    selection.ThemeFor(c.CardType),
	}
}
