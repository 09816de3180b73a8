package analytics

import (
	"math"
	"time"
)

// ProgressPercent reports how far now is between start and end, as a whole
// percentage in [0, 100]. Unknown dates yield 0.
func ProgressPercent(start, end, now time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	if now.Before(start) {
		return 0
	}
	if now.After(end) {
		return 100
	}

	total := end.Sub(start)
	if total <= 0 {
		return 100
	}

	pct := int(math.Round(float64(now.Sub(start)) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// DaysRemaining counts whole days, rounded up, from now until end. It never
// goes negative and is 0 for an unknown end date.
func DaysRemaining(end, now time.Time) int {
	if end.IsZero() {
		return 0
	}
	days := int(math.Ceil(float64(end.Sub(now)) / float64(day)))
	if days < 0 {
		return 0
	}
	return days
}
