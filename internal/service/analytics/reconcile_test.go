package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

func usage(d time.Time, qty float64) models.UsageLogEntry {
	return models.UsageLogEntry{Date: d, Quantity: qty}
}

func priced(d time.Time, qty, price float64) models.UsageLogEntry {
	return models.UsageLogEntry{Date: d, Quantity: qty, PricePerUnit: &price}
}

var starterDay5 = []models.ForecastEntry{{Day: 5, FeedType: models.FeedStarter, TargetKilos: 10}}

func TestReconcileBelowHalf(t *testing.T) {
	t.Parallel()

	today := date(2025, 3, 5).Add(9 * time.Hour)
	log := []models.UsageLogEntry{
		usage(date(2025, 3, 5), 1.5),
		usage(date(2025, 3, 5), 2.5),
		usage(date(2025, 3, 4), 9),
	}

	got := Reconcile(5, starterDay5, log, today)

	assert.Equal(t, 10.0, got.RecommendedKg)
	assert.Equal(t, models.FeedStarter, got.FeedType)
	assert.Equal(t, 4.0, got.ActualKg)
	assert.Equal(t, 4.0, got.AMActualKg)
	assert.Zero(t, got.PMActualKg)
	require.NotNil(t, got.CoveragePct)
	assert.InDelta(t, 40.0, *got.CoveragePct, 1e-9)
	assert.Equal(t, 13.0, got.TotalKg)
}

func TestReconcileAboveHalf(t *testing.T) {
	t.Parallel()

	today := date(2025, 3, 5)
	got := Reconcile(5, starterDay5, []models.UsageLogEntry{usage(today, 8)}, today)

	assert.Equal(t, 5.0, got.AMActualKg)
	assert.Equal(t, 3.0, got.PMActualKg)
	require.NotNil(t, got.CoveragePct)
	assert.InDelta(t, 80.0, *got.CoveragePct, 1e-9)
}

func TestReconcileMissingForecastDay(t *testing.T) {
	t.Parallel()

	today := date(2025, 3, 5)
	forecast := []models.ForecastEntry{{Day: 4, FeedType: models.FeedBooster, TargetKilos: 9}}

	got := Reconcile(5, forecast, []models.UsageLogEntry{usage(today, 3)}, today)

	assert.Zero(t, got.RecommendedKg)
	assert.Equal(t, models.FeedUnknown, got.FeedType)
	assert.Nil(t, got.CoveragePct)
	assert.Zero(t, got.AMActualKg)
	assert.Equal(t, 3.0, got.PMActualKg)
}

func TestReconcileEmptyInputs(t *testing.T) {
	t.Parallel()

	got := Reconcile(0, nil, nil, date(2025, 3, 5))

	want := FeedReconciliation{FeedType: models.FeedUnknown}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()

	today := date(2025, 3, 5)
	log := []models.UsageLogEntry{usage(today, 6), usage(date(2025, 3, 1), 2)}
	forecast := append([]models.ForecastEntry(nil), starterDay5...)

	first := Reconcile(5, forecast, log, today)
	second := Reconcile(5, forecast, log, today)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Reconcile() differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, starterDay5, forecast)
	assert.Len(t, log, 2)
}

func TestSplitAMPM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		actual, rec    float64
		wantAM, wantPM float64
	}{
		{"nothing used", 0, 10, 0, 0},
		{"exactly half", 5, 10, 5, 0},
		{"full day", 10, 10, 5, 5},
		{"overfed", 14, 10, 5, 9},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			am, pm := SplitAMPM(tt.actual, tt.rec)
			assert.Equal(t, tt.wantAM, am)
			assert.Equal(t, tt.wantPM, pm)
		})
	}
}

func TestFeedTypeOn(t *testing.T) {
	t.Parallel()

	start := date(2025, 3, 1)
	assert.Equal(t, models.FeedStarter, FeedTypeOn(start, date(2025, 3, 5), starterDay5))
	assert.Equal(t, models.FeedUnknown, FeedTypeOn(start, date(2025, 3, 6), starterDay5))
	assert.Equal(t, models.FeedUnknown, FeedTypeOn(start, date(2025, 2, 20), starterDay5))
	assert.Equal(t, models.FeedUnknown, FeedTypeOn(time.Time{}, date(2025, 3, 5), starterDay5))
}

func TestLabelUsage(t *testing.T) {
	t.Parallel()

	start := date(2025, 3, 1)
	usage := []models.UsageLogEntry{
		priced(date(2025, 3, 5), 4, 30),
		{Date: date(2025, 3, 6), Quantity: 2},
		{Quantity: 1},
	}

	want := []LabelledUsage{
		{Date: date(2025, 3, 5), Quantity: 4, FeedType: models.FeedStarter, Cost: 120},
		{Date: date(2025, 3, 6), Quantity: 2, FeedType: models.FeedUnknown},
		{Quantity: 1, FeedType: models.FeedUnknown},
	}
	if diff := cmp.Diff(want, LabelUsage(start, usage, starterDay5)); diff != "" {
		t.Errorf("LabelUsage mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, LabelUsage(start, nil, starterDay5))
}
