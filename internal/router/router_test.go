package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/datasource"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/feed"
	"github.com/GregMSThompson/finan-bff/internal/handlers"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/response"
	"github.com/GregMSThompson/finan-bff/internal/selection"
	"github.com/GregMSThompson/finan-bff/internal/services"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	now := func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))

	src, err := datasource.NewStatic(now)
	if err != nil {
		t.Fatalf("static source: %v", err)
	}
	bus := events.NewBus("test")

	txFeed := feed.New("transactions", func(ctx context.Context) ([]models.Transaction, error) {
		raw, err := src.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.Normalize(raw, now()), nil
	})
	cardFeed := feed.New("cards", func(ctx context.Context) ([]models.Card, error) {
		raw, err := src.ListCards(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.NormalizeCards(raw), nil
	})
	txFeed.Follow(bus, events.TransactionCreated)
	cardFeed.Follow(bus, events.TransactionCreated)

	sel := selection.NewService(src)

	deps := new(handlers.Deps)
	deps.Log = log
	deps.ResponseHandler = response.New(log)
	deps.HistorySvc = services.NewHistoryService(txFeed, src, bus, now)
	deps.CardSvc = services.NewCardService(src, cardFeed, bus, sel, now)
	deps.SelectionSvc = sel
	deps.Feeds = []handlers.FeedStatus{txFeed, cardFeed}

	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	var body struct {
		Data struct {
			Status string                `json:"status"`
			Feeds  map[string]*time.Time `json:"feeds"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Status != "ok" || len(body.Data.Feeds) != 2 {
		t.Fatalf("health = %+v", body.Data)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRouter_CardsListed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/cards")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || !body.Success || len(body.Data) == 0 {
		t.Fatalf("status=%d success=%v cards=%d", resp.StatusCode, body.Success, len(body.Data))
	}
}

func TestRouter_InvalidSortIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/history?sort=colour")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body response.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest || body.Code != "invalid_input" {
		t.Fatalf("status=%d code=%q", resp.StatusCode, body.Code)
	}
}

func TestRouter_ZeroAmountTransactionRejected(t *testing.T) {
	srv := newTestServer(t)

	body := `{"title":"Coffee","amount":0,"type":"expense"}`
	resp, err := http.Post(srv.URL+"/cards/64b7f0c2a1d3e4f5a6b7c801/transaction", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
