package store

import (
	"path/filepath"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/helpers"
)

func newTestSQLite(t *testing.T) *sqliteCache {
	t.Helper()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "nested", "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	c := newTestSQLite(t)
	ctx := helpers.TestCtx()

	var missing models.CompletionHistory
	ok, err := c.Get(ctx, HistoryKey, &missing)
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}

	history := models.CompletionHistory{"2025-01-15": {"t1": true}}
	if err := c.Put(ctx, HistoryKey, history); err != nil {
		t.Fatalf("Put: %v", err)
	}
	history["2025-01-15"]["t2"] = true
	if err := c.Put(ctx, HistoryKey, history); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	var got models.CompletionHistory
	ok, err = c.Get(ctx, HistoryKey, &got)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if !got.Completed("2025-01-15", "t2") {
		t.Fatalf("got %v", got)
	}

	if err := c.Put(ctx, TasksKey, []models.Task{{ID: "a", Name: "Run"}}); err != nil {
		t.Fatal(err)
	}
	keys, err := c.Keys(ctx)
	if err != nil || len(keys) != 2 || keys[0] != TasksKey {
		t.Fatalf("keys=%v err=%v", keys, err)
	}
}

func TestSQLiteCacheReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := helpers.TestCtx()

	c, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatal(err)
	}
	claims := models.Claims{"2025-01-15": {CardID: "c1", Amount: 3.5}}
	if err := c.Put(ctx, ClaimsKey, claims); err != nil {
		t.Fatal(err)
	}
	c.Close()

	reopened, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatalf("reopen (migrations must be idempotent): %v", err)
	}
	defer reopened.Close()

	var got models.Claims
	if ok, err := reopened.Get(ctx, ClaimsKey, &got); err != nil || !ok || got["2025-01-15"].Amount != 3.5 {
		t.Fatalf("got=%v ok=%v err=%v", got, ok, err)
	}
}
