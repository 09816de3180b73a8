// Package analytics holds the derived metrics behind the batch dashboard.
// Every function is a pure computation over snapshots; missing inputs
// degrade to zero values instead of errors.
package analytics

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Midnight strips the time of day. The calendar date is read in t's own
// location and the result is that date at midnight UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ResolveDay returns the 1-indexed production day of today for a batch that
// started on start. The second result is false when start is unknown; the
// day is then 0 and forecast lookups must be skipped. Days before the start
// date resolve to zero or less.
func ResolveDay(start, today time.Time) (int, bool) {
	if start.IsZero() {
		return 0, false
	}
	diff := Midnight(today).Sub(Midnight(start))
	return int(math.Floor(float64(diff)/float64(day))) + 1, true
}
