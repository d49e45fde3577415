package services

import (
	"context"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

type reportService struct {
	txs     transactionFeed
	goals   goalLister
	budgets []models.Budget
	topN    int
	now     Clock
}

func NewReportService(txs transactionFeed, goals goalLister, budgets []models.Budget, topN int, now Clock) *reportService {
	if len(budgets) == 0 {
		budgets = analytics.DefaultBudgets
	}
	if topN <= 0 {
		topN = analytics.DefaultTopCategories
	}
	return &reportService{txs: txs, goals: goals, budgets: budgets, topN: topN, now: now}
}

func (s *reportService) Report(ctx context.Context, period string) (dto.ReportResponse, error) {
	if period == "" {
		period = dto.RangeMonth
	}
	if err := analytics.ValidatePeriod(period); err != nil {
		return dto.ReportResponse{}, err
	}

	all, err := s.txs.Get(ctx)
	if err != nil {
		return dto.ReportResponse{}, err
	}
	now := s.now()

	// goal insights are optional; a failed goal fetch only drops them
	var goals []models.Goal
	if raw, err := s.goals.ListGoals(ctx); err != nil {
		logger.FromContext(ctx).Warn("goals unavailable for report", "error", err)
	} else {
		goals = analytics.NormalizeGoals(raw, now)
	}

	txs := analytics.InPeriod(all, period, now)
	totals := analytics.PeriodTotals(txs, analytics.Options{})
	breakdown := analytics.CategoryBreakdown(txs)
	budgets := analytics.BudgetPerformance(breakdown, s.budgets)

	return dto.ReportResponse{
		Range:            period,
		Totals:           totals,
		Breakdown:        breakdown,
		TopCategories:    analytics.TopCategories(breakdown, s.topN),
		Budgets:          budgets,
		Insights:         analytics.Insights(totals, budgets, goals, period),
		TransactionCount: len(txs),
	}, nil
}
