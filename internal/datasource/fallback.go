package datasource

import (
	"context"
	"errors"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

// Fallback sends everything to the primary source. Card, transaction and
// goal reads that fail with a transient upstream error are answered from
// the secondary source instead. Writes never fall back.
type Fallback struct {
	Source
	secondary Source
}

func NewFallback(primary, secondary Source) *Fallback {
	return &Fallback{Source: primary, secondary: secondary}
}

// Degraded reports whether err should be served from the secondary source.
func Degraded(err error) bool {
	var ext *errs.ExternalServiceError
	return errors.As(err, &ext) && ext.Transient
}

func read[T any](ctx context.Context, op string, primary, secondary func() (T, error)) (T, error) {
	out, err := primary()
	if err == nil || !Degraded(err) {
		return out, err
	}
	logger.FromContext(ctx).Warn("finance api unavailable, serving static data",
		"operation", op,
		"error", err)
	return secondary()
}

func (f *Fallback) ListCards(ctx context.Context) ([]dto.RawCard, error) {
	return read(ctx, "cards.list",
		func() ([]dto.RawCard, error) { return f.Source.ListCards(ctx) },
		func() ([]dto.RawCard, error) { return f.secondary.ListCards(ctx) })
}

func (f *Fallback) GetCard(ctx context.Context, id string) (dto.RawCard, error) {
	return read(ctx, "cards.get",
		func() (dto.RawCard, error) { return f.Source.GetCard(ctx, id) },
		func() (dto.RawCard, error) { return f.secondary.GetCard(ctx, id) })
}

func (f *Fallback) ListTransactions(ctx context.Context) ([]dto.RawTransaction, error) {
	return read(ctx, "transactions.list",
		func() ([]dto.RawTransaction, error) { return f.Source.ListTransactions(ctx) },
		func() ([]dto.RawTransaction, error) { return f.secondary.ListTransactions(ctx) })
}

func (f *Fallback) ListCardTransactions(ctx context.Context, cardID string) ([]dto.RawTransaction, error) {
	return read(ctx, "transactions.listByCard",
		func() ([]dto.RawTransaction, error) { return f.Source.ListCardTransactions(ctx, cardID) },
		func() ([]dto.RawTransaction, error) { return f.secondary.ListCardTransactions(ctx, cardID) })
}

func (f *Fallback) ListGoals(ctx context.Context) ([]dto.RawGoal, error) {
	return read(ctx, "goals.list",
		func() ([]dto.RawGoal, error) { return f.Source.ListGoals(ctx) },
		func() ([]dto.RawGoal, error) { return f.secondary.ListGoals(ctx) })
}
