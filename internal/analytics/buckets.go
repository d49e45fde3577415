package analytics

import (
	"math"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const DefaultWindowDays = 7

// Options tunes how credits are counted. Rewards are income unless
// ExcludeRewards is set.
type Options struct {
	ExcludeRewards bool
}

func (o Options) countsAsIncome(t models.TransactionType) bool {
	switch t {
	case models.TypeIncome:
		return true
	case models.TypeReward:
		return !o.ExcludeRewards
	}
	return false
}

// DayBuckets sums transactions into one bucket per calendar day of the
// window ending today (in now's location). Expense sums are negative.
func DayBuckets(txs []models.Transaction, days int, now time.Time, opts Options) dto.WeeklyReport {
	if days <= 0 {
		days = DefaultWindowDays
	}
	loc := now.Location()

	window := LastDays(days, now)
	buckets := make([]dto.DayBucket, len(window))
	index := make(map[string]int, len(window))
	for i, d := range window {
		key := d.Format(DateLayout)
		buckets[i] = dto.DayBucket{Label: d.Format("Mon"), Date: key}
		index[key] = i
	}

	for _, tx := range txs {
		i, ok := index[DayKey(tx.Date, loc)]
		if !ok {
			continue
		}
		amount := math.Abs(tx.Amount)
		switch {
		case tx.Type == models.TypeExpense:
			buckets[i].Expense -= amount
		case opts.countsAsIncome(tx.Type):
			buckets[i].Income += amount
		}
	}

	report := dto.WeeklyReport{Buckets: buckets}
	var expense float64
	for _, b := range buckets {
		report.TotalIncome += b.Income
		expense += b.Expense
	}
	report.TotalExpense = math.Abs(expense)
	report.Net = report.TotalIncome - report.TotalExpense
	return report
}

// CompletionSeries counts completed tasks per day over the window ending
// today. Max is at least 1 so a chart can always scale by it.
func CompletionSeries(history models.CompletionHistory, days int, now time.Time) dto.CompletionSeries {
	if days <= 0 {
		days = DefaultWindowDays
	}
	series := dto.CompletionSeries{Max: 1}
	for _, d := range LastDays(days, now) {
		key := d.Format(DateLayout)
		count := 0
		for _, done := range history[key] {
			if done {
				count++
			}
		}
		series.Points = append(series.Points, dto.CompletionPoint{
			Date:  key,
			Label: d.Format("Mon"),
			Count: count,
		})
		series.Max = max(series.Max, count)
	}
	return series
}
