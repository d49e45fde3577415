package analytics

import (
	"time"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const PeriodAll = "all"

func ValidatePeriod(period string) error {
	switch period {
	case "", PeriodAll, dto.RangeWeek, dto.RangeMonth, dto.RangeQuarter, dto.RangeYear:
		return nil
	}
	return errs.NewValidationError("unknown report range: " + period)
}

// InPeriod keeps the transactions of a reporting window:
//
//	week     the last 7×24h
//	month    the current calendar month
//	quarter  since the first day of the current quarter
//	year     since January 1st
//
// Anything else keeps the whole list.
func InPeriod(txs []models.Transaction, period string, now time.Time) []models.Transaction {
	var keep func(t time.Time) bool
	switch period {
	case dto.RangeWeek:
		from := now.Add(-7 * 24 * time.Hour)
		keep = func(t time.Time) bool { return !t.Before(from) }
	case dto.RangeMonth:
		keep = func(t time.Time) bool {
			t = t.In(now.Location())
			return t.Year() == now.Year() && t.Month() == now.Month()
		}
	case dto.RangeQuarter:
		from := firstOfQuarter(now)
		keep = func(t time.Time) bool { return !t.Before(from) }
	case dto.RangeYear:
		from := firstOfYear(now)
		keep = func(t time.Time) bool { return !t.Before(from) }
	default:
		return append([]models.Transaction(nil), txs...)
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// PeriodTotals sums credits and debits. Net is income minus expenses.
func PeriodTotals(txs []models.Transaction, opts Options) dto.PeriodTotals {
	var totals dto.PeriodTotals
	for _, tx := range txs {
		switch {
		case tx.Type == models.TypeExpense:
			totals.Expenses += tx.Amount
		case opts.countsAsIncome(tx.Type):
			totals.Income += tx.Amount
		}
	}
	totals.Net = totals.Income - totals.Expenses
	totals.Count = len(txs)
	return totals
}
