package services

import (
	"context"
	"math"
	"strings"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

type goalSource interface {
	ListGoals(ctx context.Context) ([]dto.RawGoal, error)
	CreateGoal(ctx context.Context, req dto.GoalRequest) (dto.RawGoal, error)
	UpdateGoal(ctx context.Context, id string, patch map[string]any) (dto.RawGoal, error)
	AddMoney(ctx context.Context, id string, amount float64) (dto.RawGoal, error)
}

type goalService struct {
	source goalSource
	now    Clock
}

func NewGoalService(source goalSource, now Clock) *goalService {
	return &goalService{source: source, now: now}
}

func (s *goalService) List(ctx context.Context) ([]dto.GoalView, error) {
	raw, err := s.source.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	goals := analytics.NormalizeGoals(raw, s.now())
	out := make([]dto.GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, analytics.GoalViewOf(g))
	}
	return out, nil
}

func (s *goalService) Create(ctx context.Context, req dto.GoalRequest) (dto.GoalView, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return dto.GoalView{}, errs.NewValidationError("title is required")
	}
	if !positive(req.Target) {
		return dto.GoalView{}, errs.NewValidationError("target must be greater than zero")
	}
	if math.IsNaN(req.Current) || math.IsInf(req.Current, 0) || req.Current < 0 {
		return dto.GoalView{}, errs.NewValidationError("current amount cannot be negative")
	}
	switch models.GoalPriority(req.Priority) {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	case "":
		req.Priority = string(models.PriorityMedium)
	default:
		return dto.GoalView{}, errs.NewValidationError("unknown priority: " + req.Priority)
	}
	if req.Deadline != "" {
		if _, ok := analytics.ParseDate(req.Deadline, s.now().Location()); !ok {
			return dto.GoalView{}, errs.NewValidationError("deadline must be a date")
		}
	}

	raw, err := s.source.CreateGoal(ctx, req)
	if err != nil {
		return dto.GoalView{}, err
	}
	goal := analytics.NormalizeGoal(raw, s.now())
	logger.FromContext(ctx).Info("goal created", "goalId", goal.ID)
	return analytics.GoalViewOf(goal), nil
}

// AddMoney adds to a goal's progress. Completed goals are frozen.
func (s *goalService) AddMoney(ctx context.Context, id string, amount float64) (dto.GoalView, error) {
	if !positive(amount) {
		return dto.GoalView{}, errs.NewValidationError("amount must be greater than zero")
	}
	goal, err := s.find(ctx, id)
	if err != nil {
		return dto.GoalView{}, err
	}
	if goal.Completed {
		return dto.GoalView{}, errs.NewValidationError("goal is already completed")
	}

	raw, err := s.source.AddMoney(ctx, id, amount)
	if err != nil {
		return dto.GoalView{}, err
	}
	return analytics.GoalViewOf(analytics.NormalizeGoal(raw, s.now())), nil
}

// Complete marks a goal done once it has reached its target.
func (s *goalService) Complete(ctx context.Context, id string) (dto.GoalView, error) {
	goal, err := s.find(ctx, id)
	if err != nil {
		return dto.GoalView{}, err
	}
	if goal.Completed {
		return dto.GoalView{}, errs.NewValidationError("goal is already completed")
	}
	if !analytics.CanComplete(goal) {
		return dto.GoalView{}, errs.NewValidationError("goal has not reached its target")
	}

	raw, err := s.source.UpdateGoal(ctx, id, map[string]any{"completed": true})
	if err != nil {
		return dto.GoalView{}, err
	}
	logger.FromContext(ctx).Info("goal completed", "goalId", id)
	return analytics.GoalViewOf(analytics.NormalizeGoal(raw, s.now())), nil
}

// find looks a goal up in the listing; the Finance API has no single-goal
// read.
func (s *goalService) find(ctx context.Context, id string) (models.Goal, error) {
	raw, err := s.source.ListGoals(ctx)
	if err != nil {
		return models.Goal{}, err
	}
	for _, g := range analytics.NormalizeGoals(raw, s.now()) {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, errs.NewNotFoundError("goal not found")
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
