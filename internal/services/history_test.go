package services

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/pkg/helpers"
)

func historyFeedFixture() *fakeFeed[models.Transaction] {
	items := make([]models.Transaction, 0)
	for i := 0; i < 12; i++ {
		typ := models.TypeExpense
		if i%3 == 0 {
			typ = models.TypeIncome
		}
		items = append(items, tx(string(rune('a'+i)), typ, float64(i+1), []string{"Food", "Rent"}[i%2], testNow.AddDate(0, 0, -i)))
	}
	return &fakeFeed[models.Transaction]{items: items}
}

func TestHistoryQueryDefaultsToNewestFirst(t *testing.T) {
	svc := NewHistoryService(historyFeedFixture(), newFakeSource(), &fakeBus{}, fixedClock())

	page, err := svc.Query(helpers.TestCtx(), dto.HistoryQuery{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if page.TotalItems != 12 || page.TotalPages != 2 || page.Page != 1 || page.PageSize != 10 {
		t.Fatalf("unexpected paging %+v", page)
	}
	if len(page.Transactions) != 10 || page.Transactions[0].ID != "a" {
		t.Fatalf("expected newest first, got %s", page.Transactions[0].ID)
	}
	if len(page.Categories) != 2 || page.Categories[0] != "Food" {
		t.Errorf("categories %v", page.Categories)
	}
}

func TestHistoryQueryFiltersAndSummarizes(t *testing.T) {
	svc := NewHistoryService(historyFeedFixture(), newFakeSource(), &fakeBus{}, fixedClock())

	page, err := svc.Query(helpers.TestCtx(), dto.HistoryQuery{
		Filter:   dto.TransactionFilter{Type: "income", DateRange: dto.RangeWeek},
		Sort:     dto.SortSpec{Key: dto.SortByAmount, Order: dto.SortAsc},
		Page:     1,
		PageSize: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	// incomes at i=0,3,6 fall inside the week
	if page.TotalItems != 3 || page.Summary.Income != 1+4+7 || page.Summary.Expenses != 0 {
		t.Fatalf("unexpected %+v", page)
	}
	if page.Transactions[0].Amount != 1 || page.Transactions[2].Amount != 7 {
		t.Errorf("expected ascending amounts, got %+v", page.Transactions)
	}
	if len(page.Categories) != 2 {
		t.Errorf("categories should come from the unfiltered set: %v", page.Categories)
	}
}

func TestHistoryQueryRejectsBadFilter(t *testing.T) {
	svc := NewHistoryService(historyFeedFixture(), newFakeSource(), &fakeBus{}, fixedClock())

	for _, q := range []dto.HistoryQuery{
		{Filter: dto.TransactionFilter{Type: "transfer"}},
		{Sort: dto.SortSpec{Key: "title"}},
		{Sort: dto.SortSpec{Order: "sideways"}},
	} {
		_, err := svc.Query(helpers.TestCtx(), q)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%+v: expected ValidationError, got %v", q, err)
		}
	}
}

func TestHistoryDeletePublishes(t *testing.T) {
	src := newFakeSource()
	bus := &fakeBus{}
	svc := NewHistoryService(historyFeedFixture(), src, bus, fixedClock())

	if err := svc.Delete(helpers.TestCtx(), "a"); err != nil {
		t.Fatal(err)
	}
	if len(src.deletedTxs) != 1 || len(bus.events) != 1 {
		t.Fatalf("deleted=%v events=%v", src.deletedTxs, bus.events)
	}
	if bus.events[0].Topic != events.TransactionCreated || bus.events[0].TransactionID != "a" {
		t.Errorf("unexpected event %+v", bus.events[0])
	}
}

func TestHistoryDeleteFailureDoesNotPublish(t *testing.T) {
	src := newFakeSource()
	src.deleteTxErr = unavailable()
	bus := &fakeBus{}
	svc := NewHistoryService(historyFeedFixture(), src, bus, fixedClock())

	if err := svc.Delete(helpers.TestCtx(), "a"); err == nil {
		t.Fatal("expected error")
	}
	if len(bus.events) != 0 {
		t.Fatal("no event expected")
	}
}
