package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/pkg/helpers"
)

// failingSource is a Static whose reads and writes fail with err.
type failingSource struct {
	*Static
	err error
}

func (f *failingSource) ListTransactions(context.Context) ([]dto.RawTransaction, error) {
	return nil, f.err
}

func (f *failingSource) ListCards(context.Context) ([]dto.RawCard, error) {
	return nil, f.err
}

func (f *failingSource) CreateCard(context.Context, dto.CardRequest) (dto.RawCard, error) {
	return dto.RawCard{}, f.err
}

func TestFallbackServesSecondaryOnTransientError(t *testing.T) {
	primary := &failingSource{Static: newTestStatic(t), err: errs.NewExternalServiceError("finance-api", 0, "refused", nil)}
	fb := NewFallback(primary, newTestStatic(t))

	txs, err := fb.ListTransactions(helpers.TestCtx())
	if err != nil || len(txs) != 12 {
		t.Fatalf("txs=%d err=%v", len(txs), err)
	}
}

func TestFallbackKeepsPermanentErrors(t *testing.T) {
	permanent := errs.NewExternalServiceError("finance-api", 400, "bad request", nil)
	primary := &failingSource{Static: newTestStatic(t), err: permanent}
	fb := NewFallback(primary, newTestStatic(t))

	if _, err := fb.ListCards(helpers.TestCtx()); !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
}

func TestFallbackNeverFallsBackOnWrites(t *testing.T) {
	transient := errs.NewExternalServiceError("finance-api", 503, "down", nil)
	primary := &failingSource{Static: newTestStatic(t), err: transient}
	fb := NewFallback(primary, newTestStatic(t))

	if _, err := fb.CreateCard(helpers.TestCtx(), dto.CardRequest{AccountName: "x"}); !errors.Is(err, transient) {
		t.Fatalf("write must surface the error, got %v", err)
	}
}
