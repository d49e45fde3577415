package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const DefaultTopCategories = 5

// DefaultBudgets is the ceiling table used when none is configured.
var DefaultBudgets = []models.Budget{
	{Category: "Housing", Ceiling: 15000},
	{Category: "Groceries", Ceiling: 2000},
	{Category: "Transportation", Ceiling: 1000},
	{Category: "Food & Drink", Ceiling: 1500},
	{Category: "Utilities", Ceiling: 500},
	{Category: "Health", Ceiling: 1000},
	{Category: "Education", Ceiling: 2000},
}

// CategoryBreakdown sums expense amounts per category.
func CategoryBreakdown(txs []models.Transaction) map[string]float64 {
	out := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		out[tx.Category] += tx.Amount
	}
	return out
}

// TopCategories ranks the breakdown by sum, descending, ties by name. The
// percentage is of all expenses, not only the returned ones.
func TopCategories(breakdown map[string]float64, limit int) []dto.CategoryShare {
	if limit <= 0 {
		limit = DefaultTopCategories
	}
	var total float64
	shares := make([]dto.CategoryShare, 0, len(breakdown))
	for cat, sum := range breakdown {
		total += sum
		shares = append(shares, dto.CategoryShare{Category: cat, Amount: sum})
	}
	slices.SortFunc(shares, func(a, b dto.CategoryShare) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if len(shares) > limit {
		shares = shares[:limit]
	}
	for i := range shares {
		if total > 0 {
			shares[i].Percent = shares[i].Amount / total * 100
		}
	}
	return shares
}

// ClassifyBudget maps an unclamped spend percentage onto a health status.
func ClassifyBudget(raw float64) dto.BudgetHealth {
	switch {
	case raw > 100:
		return dto.BudgetOver
	case raw > 80:
		return dto.BudgetWarning
	}
	return dto.BudgetGood
}

// BudgetPerformance reports spend against each ceiling in table order.
// A non-positive ceiling has no meaningful percentage: it is over as soon
// as anything is spent.
func BudgetPerformance(breakdown map[string]float64, budgets []models.Budget) []dto.BudgetStatus {
	out := make([]dto.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		st := dto.BudgetStatus{
			Category: b.Category,
			Ceiling:  b.Ceiling,
			Spent:    breakdown[b.Category],
		}
		if b.Ceiling <= 0 {
			st.Status = dto.BudgetGood
			if st.Spent > 0 {
				st.Status = dto.BudgetOver
			}
			out = append(out, st)
			continue
		}
		st.RawPercentage = st.Spent / b.Ceiling * 100
		st.Percentage = min(st.RawPercentage, 100)
		st.Status = ClassifyBudget(st.RawPercentage)
		out = append(out, st)
	}
	return out
}

// Insights derives the report call-outs. period is only used in wording.
func Insights(totals dto.PeriodTotals, budgets []dto.BudgetStatus, goals []models.Goal, period string) []dto.Insight {
	var out []dto.Insight

	if totals.Expenses > totals.Income*0.8 {
		msg := "You have expenses but no income recorded. Consider reducing expenses."
		if totals.Income > 0 {
			msg = fmt.Sprintf("You're spending %.1f%% of your income. Consider reducing expenses.",
				totals.Expenses/totals.Income*100)
		}
		out = append(out, dto.Insight{
			Type:    dto.InsightWarning,
			Title:   "High Spending Alert",
			Message: msg,
			Action:  "Review Budget",
		})
	}

	over := 0
	for _, b := range budgets {
		if b.Status == dto.BudgetOver {
			over++
		}
	}
	if over > 0 {
		noun := "category"
		if over > 1 {
			noun = "categories"
		}
		out = append(out, dto.Insight{
			Type:    dto.InsightError,
			Title:   "Over Budget",
			Message: fmt.Sprintf("You've exceeded budget in %d %s.", over, noun),
			Action:  "Adjust Budget",
		})
	}

	if totals.Net > 0 {
		if period == "" || period == PeriodAll {
			period = "period"
		}
		out = append(out, dto.Insight{
			Type:    dto.InsightSuccess,
			Title:   "Great Savings!",
			Message: fmt.Sprintf("You saved %.2f this %s. Keep it up!", totals.Net, period),
			Action:  "View Goals",
		})
	}

	near := 0
	for _, g := range goals {
		if GoalStateOf(g) == models.GoalNearComplete {
			near++
		}
	}
	if near > 0 {
		noun := "goal"
		if near > 1 {
			noun = "goals"
		}
		out = append(out, dto.Insight{
			Type:    dto.InsightInfo,
			Title:   "Goal Progress",
			Message: fmt.Sprintf("You're close to achieving %d %s!", near, noun),
			Action:  "View Goals",
		})
	}
	return out
}
