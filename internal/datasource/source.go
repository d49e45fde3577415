// Package datasource abstracts where Finance API data comes from: the
// remote service, an in-memory fixture set, or the remote service with
// the fixtures as a read fallback.
package datasource

import (
	"context"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

// Source is the full Finance API surface this service consumes.
type Source interface {
	ListCards(ctx context.Context) ([]dto.RawCard, error)
	GetCard(ctx context.Context, id string) (dto.RawCard, error)
	CreateCard(ctx context.Context, req dto.CardRequest) (dto.RawCard, error)
	UpdateCard(ctx context.Context, id string, req dto.CardRequest) (dto.RawCard, error)
	DeleteCard(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, cardID string, req dto.CreateTransactionRequest) (dto.RawTransaction, error)
	ListTransactions(ctx context.Context) ([]dto.RawTransaction, error)
	ListCardTransactions(ctx context.Context, cardID string) ([]dto.RawTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	ListGoals(ctx context.Context) ([]dto.RawGoal, error)
	CreateGoal(ctx context.Context, req dto.GoalRequest) (dto.RawGoal, error)
	UpdateGoal(ctx context.Context, id string, patch map[string]any) (dto.RawGoal, error)
	AddMoney(ctx context.Context, id string, amount float64) (dto.RawGoal, error)

	ListTasks(ctx context.Context) ([]dto.RawTask, error)
	CreateTask(ctx context.Context, req dto.TaskRequest) (dto.RawTask, error)
	UpdateTask(ctx context.Context, id string, req dto.TaskRequest) error
	DeleteTask(ctx context.Context, id string) error

	PlannerHistory(ctx context.Context) ([]models.HistoryRecord, error)
}

const (
	KindRemote = "remote"
	KindStatic = "static"
)
