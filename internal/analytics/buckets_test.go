package analytics

import (
	"reflect"
	"testing"

	"github.com/GregMSThompson/finan-bff/internal/models"
)

func TestDayBucketsExample(t *testing.T) {
	txs := []models.Transaction{
		tx("e", models.TypeExpense, 100, testNow),
		tx("i", models.TypeIncome, 300, testNow),
	}

	got := DayBuckets(txs, 7, testNow, Options{})

	if len(got.Buckets) != 7 {
		t.Fatalf("buckets = %d", len(got.Buckets))
	}
	today := got.Buckets[6]
	if today.Date != "2025-01-15" || today.Label != "Wed" {
		t.Fatalf("today bucket = %+v", today)
	}
	if today.Income != 300 || today.Expense != -100 {
		t.Fatalf("today = %+v", today)
	}
	if got.TotalIncome != 300 || got.TotalExpense != 100 || got.Net != 200 {
		t.Fatalf("totals = %+v", got)
	}
	if got.Buckets[0].Date != "2025-01-09" {
		t.Fatalf("first bucket = %s", got.Buckets[0].Date)
	}
}

func TestDayBucketsDropsOutOfWindowAndIsIdempotent(t *testing.T) {
	txs := []models.Transaction{
		tx("old", models.TypeIncome, 999, testNow.AddDate(0, 0, -7)),
		tx("future", models.TypeIncome, 999, testNow.AddDate(0, 0, 1)),
		tx("in", models.TypeExpense, 20, testNow.AddDate(0, 0, -6)),
	}

	first := DayBuckets(txs, 7, testNow, Options{})
	second := DayBuckets(txs, 7, testNow, Options{})

	if !reflect.DeepEqual(first, second) {
		t.Fatal("aggregation must be idempotent")
	}
	if first.TotalIncome != 0 || first.TotalExpense != 20 || first.Buckets[0].Expense != -20 {
		t.Fatalf("unexpected: %+v", first)
	}
}

func TestDayBucketsEmpty(t *testing.T) {
	got := DayBuckets(nil, 7, testNow, Options{})
	if got.Net != 0 || got.TotalIncome != 0 || got.TotalExpense != 0 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestDayBucketsRewards(t *testing.T) {
	txs := []models.Transaction{tx("r", models.TypeReward, 5, testNow)}

	if got := DayBuckets(txs, 7, testNow, Options{}); got.TotalIncome != 5 {
		t.Fatalf("reward should count as income, got %+v", got)
	}
	if got := DayBuckets(txs, 7, testNow, Options{ExcludeRewards: true}); got.TotalIncome != 0 {
		t.Fatalf("reward should be excluded, got %+v", got)
	}
}

func TestNetMatchesSignedSum(t *testing.T) {
	txs := []models.Transaction{
		tx("1", models.TypeIncome, 120.25, testNow),
		tx("2", models.TypeReward, 4.75, testNow.AddDate(0, 0, -1)),
		tx("3", models.TypeExpense, 60, testNow.AddDate(0, 0, -2)),
		tx("4", models.TypeExpense, 15.5, testNow.AddDate(0, 0, -3)),
	}
	want := 120.25 + 4.75 - 60 - 15.5

	if got := DayBuckets(txs, 7, testNow, Options{}).Net; got != want {
		t.Fatalf("bucket net = %v, want %v", got, want)
	}
	if got := PeriodTotals(txs, Options{}).Net; got != want {
		t.Fatalf("period net = %v, want %v", got, want)
	}
}

func TestCompletionSeries(t *testing.T) {
	history := models.CompletionHistory{
		"2025-01-15": {"a": true, "b": true, "c": false},
		"2025-01-13": {"a": true},
		"2024-12-01": {"a": true},
	}

	got := CompletionSeries(history, 7, testNow)

	if len(got.Points) != 7 || got.Points[6].Count != 2 || got.Points[4].Count != 1 {
		t.Fatalf("points = %+v", got.Points)
	}
	if got.Max != 2 {
		t.Fatalf("max = %d", got.Max)
	}
	if empty := CompletionSeries(nil, 7, testNow); empty.Max != 1 {
		t.Fatalf("empty max = %d, want 1", empty.Max)
	}
}
