package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finan-bff/internal/models"
)

// ParseIncentive extracts a currency amount from free text such as
// "$5 reward" or "RM 2.50". Digits and dots are kept, then the leading
// number is parsed. ok is false when nothing numeric is left.
func ParseIncentive(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	kept := b.String()

	end, dot, digits := 0, false, 0
	for end < len(kept) {
		c := kept[end]
		if c == '.' {
			if dot {
				break
			}
			dot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return decimal.Zero, false
	}
	num := strings.TrimSuffix(kept[:end], ".")
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IncentiveTotal sums the parseable incentives of the tasks done on a day.
func IncentiveTotal(tasks []models.Task, done map[string]bool) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tasks {
		if !done[t.ID] {
			continue
		}
		if v, ok := ParseIncentive(t.Incentive); ok {
			total = total.Add(v)
		}
	}
	return total
}
