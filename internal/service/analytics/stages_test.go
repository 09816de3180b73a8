package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

func TestStageTotals(t *testing.T) {
	t.Parallel()

	forecast := []models.ForecastEntry{
		{Day: 1, FeedType: models.FeedBooster, TargetKilos: 1},
		{Day: 2, FeedType: models.FeedBooster, TargetKilos: 2},
		{Day: 3, FeedType: models.FeedStarter, TargetKilos: 3},
		{Day: 4, FeedType: models.FeedFinisher, TargetKilos: 4},
		{Day: 5, FeedType: models.FeedFinisher, TargetKilos: 5},
	}

	got := StageTotals(forecast)

	require.Len(t, got, 3)
	assert.Equal(t, StageTotal{FeedType: models.FeedBooster, FirstDay: 1, LastDay: 2, TargetKilos: 3}, got[0])
	assert.Equal(t, StageTotal{FeedType: models.FeedStarter, FirstDay: 3, LastDay: 3, TargetKilos: 3}, got[1])
	assert.Equal(t, StageTotal{FeedType: models.FeedFinisher, FirstDay: 4, LastDay: 5, TargetKilos: 9}, got[2])

	assert.Equal(t, 15.0, TotalTarget(forecast))
	assert.Equal(t, 7.0, SumTargets(forecast, 3, 4))
	assert.Zero(t, SumTargets(forecast, 10, 20))
	assert.Empty(t, StageTotals(nil))
}

func TestPhaseTotals(t *testing.T) {
	t.Parallel()

	forecast := []models.ForecastEntry{
		{Day: 1, FeedType: models.FeedBooster, TargetKilos: 1},
		{Day: 10, FeedType: models.FeedBooster, TargetKilos: 2},
		{Day: 11, FeedType: models.FeedBooster, TargetKilos: 4},
		{Day: 23, FeedType: models.FeedStarter, TargetKilos: 8},
		{Day: 30, FeedType: models.FeedFinisher, TargetKilos: 16},
		{Day: 31, FeedType: models.FeedFinisher, TargetKilos: 32},
	}

	want := []PhaseTotal{
		{FeedType: models.FeedBooster, FromDay: 1, ToDay: 10, TargetKilos: 3},
		{FeedType: models.FeedStarter, FromDay: 11, ToDay: 23, TargetKilos: 12},
		{FeedType: models.FeedFinisher, FromDay: 24, ToDay: 30, TargetKilos: 16},
	}
	assert.Equal(t, want, PhaseTotals(forecast))

	empty := PhaseTotals(nil)
	require.Len(t, empty, 3)
	assert.Zero(t, empty[0].TargetKilos)
}

func TestStageRemaining(t *testing.T) {
	t.Parallel()

	forecast := []models.ForecastEntry{
		{Day: 1, FeedType: models.FeedBooster, TargetKilos: 20},
		{Day: 2, FeedType: models.FeedBooster, TargetKilos: 30},
		{Day: 3, FeedType: models.FeedStarter, TargetKilos: 40},
	}
	expenses := []models.ExpenseEntry{
		{Category: "Feeds", FeedType: models.FeedBooster, Amount: 1500, Quantity: 25},
		{Category: "Feeds", FeedType: models.FeedBooster, Amount: 1500, Quantity: 10},
		{Category: "Feeds", FeedType: models.FeedStarter, Amount: 1600, Quantity: 50},
		{Category: "Feeds", FeedType: models.FeedFinisher, Amount: 1700, Quantity: 5},
		{Category: "Vitamins", FeedType: models.FeedUnknown, Amount: 200, Quantity: 3},
	}

	want := []StageBalance{
		{FeedType: models.FeedBooster, TargetKilos: 50, PurchasedKg: 35, RemainingKg: 15},
		{FeedType: models.FeedStarter, TargetKilos: 40, PurchasedKg: 50, RemainingKg: -10},
	}
	assert.Equal(t, want, StageRemaining(forecast, expenses))

	noForecast := StageRemaining(nil, expenses)
	assert.NotNil(t, noForecast)
	assert.Empty(t, noForecast)
}
