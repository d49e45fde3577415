package analytics

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/errs"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const DefaultPageSize = 10

// ValidateFilter rejects values outside the filter vocabulary.
func ValidateFilter(f dto.TransactionFilter) error {
	switch f.Type {
	case "", dto.FilterAll, string(models.TypeIncome), string(models.TypeExpense), string(models.TypeReward):
	default:
		return errs.NewValidationError("unknown transaction type: " + f.Type)
	}
	switch models.TransactionStatus(f.Status) {
	case "", dto.FilterAll, models.StatusCompleted, models.StatusPending, models.StatusFailed, models.StatusCancelled:
	default:
		return errs.NewValidationError("unknown status: " + f.Status)
	}
	switch f.DateRange {
	case "", dto.FilterAll, dto.RangeWeek, dto.RangeMonth, dto.RangeQuarter, dto.RangeYear:
	default:
		return errs.NewValidationError("unknown date range: " + f.DateRange)
	}
	return nil
}

func ValidateSort(s dto.SortSpec) error {
	switch s.Key {
	case "", dto.SortByDate, dto.SortByAmount, dto.SortByCategory:
	default:
		return errs.NewValidationError("unknown sort key: " + string(s.Key))
	}
	switch s.Order {
	case "", dto.SortAsc, dto.SortDesc:
	default:
		return errs.NewValidationError("unknown sort order: " + string(s.Order))
	}
	return nil
}

// Filter returns the transactions matching every active predicate. The
// input is left untouched.
func Filter(txs []models.Transaction, f dto.TransactionFilter, now time.Time) []models.Transaction {
	cutoff, hasCutoff := RangeCutoff(f.DateRange, now)
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if active(f.Type) && string(tx.Type) != f.Type {
			continue
		}
		if active(f.Category) && tx.Category != f.Category {
			continue
		}
		if active(f.Status) && string(tx.Status) != f.Status {
			continue
		}
		if hasCutoff && tx.Date.Before(cutoff) {
			continue
		}
		if term != "" && !Matches(tx, term) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func active(v string) bool {
	return v != "" && v != dto.FilterAll
}

// Matches reports whether the lower-cased term is a substring of the title,
// description, category or any tag.
func Matches(tx models.Transaction, term string) bool {
	if strings.Contains(strings.ToLower(tx.Title), term) ||
		strings.Contains(strings.ToLower(tx.Description), term) ||
		strings.Contains(strings.ToLower(tx.Category), term) {
		return true
	}
	return slices.ContainsFunc(tx.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}

// RangeCutoff is "now minus the range" using calendar arithmetic for
// month, quarter and year.
func RangeCutoff(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case dto.RangeWeek:
		return now.AddDate(0, 0, -7), true
	case dto.RangeMonth:
		return now.AddDate(0, -1, 0), true
	case dto.RangeQuarter:
		return now.AddDate(0, -3, 0), true
	case dto.RangeYear:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// Sort returns a stably sorted copy.
func Sort(txs []models.Transaction, spec dto.SortSpec) []models.Transaction {
	out := slices.Clone(txs)
	compare := comparator(spec.Key)
	if spec.Order == dto.SortDesc {
		asc := compare
		compare = func(a, b models.Transaction) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(key dto.SortKey) func(a, b models.Transaction) int {
	switch key {
	case dto.SortByAmount:
		return func(a, b models.Transaction) int { return cmp.Compare(a.Amount, b.Amount) }
	case dto.SortByCategory:
		return func(a, b models.Transaction) int { return strings.Compare(a.Category, b.Category) }
	default:
		return func(a, b models.Transaction) int { return a.Date.Compare(b.Date) }
	}
}

// Paginate returns the window for page (1-based, clamped to >= 1) and the
// total number of pages.
func Paginate(txs []models.Transaction, page, pageSize int) ([]models.Transaction, int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	totalPages := (len(txs) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= len(txs) {
		return []models.Transaction{}, page, totalPages
	}
	end := min(start+pageSize, len(txs))
	return slices.Clone(txs[start:end]), page, totalPages
}

// Categories lists the distinct categories, sorted.
func Categories(txs []models.Transaction) []string {
	seen := make(map[string]struct{}, len(txs))
	out := make([]string, 0)
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	slices.Sort(out)
	return out
}

// Recent returns the newest limit transactions, newest first.
func Recent(txs []models.Transaction, limit int) []models.Transaction {
	sorted := Sort(txs, dto.SortSpec{Key: dto.SortByDate, Order: dto.SortDesc})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Summarize totals a (usually filtered) list with rewards counted as income.
func Summarize(txs []models.Transaction) dto.PeriodTotals {
	return PeriodTotals(txs, Options{})
}
