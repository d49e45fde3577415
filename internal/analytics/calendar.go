package analytics

import "time"

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func firstOfQuarter(t time.Time) time.Time {
	m := int(t.Month())
	qStart := ((m-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(qStart), 1, 0, 0, 0, 0, t.Location())
}

func firstOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// DayKey is the ISO calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// LastDays lists the ISO days from now-(n-1) through now, oldest first.
func LastDays(n int, now time.Time) []time.Time {
	if n <= 0 {
		return nil
	}
	today := startOfDay(now)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = today.AddDate(0, 0, i-(n-1))
	}
	return out
}
