package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

func TestSelectActive(t *testing.T) {
	t.Parallel()

	batches := []models.Batch{
		{ID: "a", Status: models.BatchCompleted},
		{ID: "b", Status: models.BatchActive},
		{ID: "c", Status: models.BatchInactive},
		{ID: "d", Status: models.BatchActive},
	}

	sel := SelectActive(batches)

	assert.True(t, sel.Found)
	assert.Equal(t, "b", sel.Batch.ID)
	assert.Equal(t, []string{"d"}, sel.Conflicts)
}

func TestSelectActiveNone(t *testing.T) {
	t.Parallel()

	sel := SelectActive([]models.Batch{{ID: "a", Status: models.BatchCompleted}})

	assert.False(t, sel.Found)
	assert.Empty(t, sel.Conflicts)
}

func TestShouldAutoComplete(t *testing.T) {
	t.Parallel()

	b := models.Batch{Status: models.BatchActive, ExpectedCompleteDate: date(2025, 3, 30)}

	assert.False(t, ShouldAutoComplete(b, date(2025, 3, 29).Add(23*time.Hour)))
	assert.True(t, ShouldAutoComplete(b, date(2025, 3, 30).Add(time.Minute)))
	assert.True(t, ShouldAutoComplete(b, date(2025, 4, 2)))

	b.Status = models.BatchCompleted
	assert.False(t, ShouldAutoComplete(b, date(2025, 4, 2)))

	assert.False(t, ShouldAutoComplete(models.Batch{Status: models.BatchActive}, date(2025, 4, 2)))
}
