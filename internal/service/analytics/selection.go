package analytics

import (
	"time"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

// ActiveSelection is the outcome of looking for the running batch.
type ActiveSelection struct {
	Batch models.Batch
	Found bool
	// Conflicts lists the IDs of further active batches. Only one batch may
	// be active at a time, so a non-empty list is a data-integrity problem.
	Conflicts []string
}

// SelectActive picks the running batch from store-ordered batches. The first
// active batch in store order wins.
func SelectActive(batches []models.Batch) ActiveSelection {
	var sel ActiveSelection
	for _, b := range batches {
		if !b.IsActive() {
			continue
		}
		if !sel.Found {
			sel.Batch = b
			sel.Found = true
			continue
		}
		sel.Conflicts = append(sel.Conflicts, b.ID)
	}
	return sel
}

// ShouldAutoComplete reports whether an active batch has reached its
// expected completion date as of today.
func ShouldAutoComplete(b models.Batch, today time.Time) bool {
	if !b.IsActive() || b.ExpectedCompleteDate.IsZero() {
		return false
	}
	return !Midnight(today).Before(Midnight(b.ExpectedCompleteDate))
}
