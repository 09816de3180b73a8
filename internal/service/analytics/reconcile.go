package analytics

import (
	"time"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

// FeedReconciliation compares a day's feed target against logged usage.
//
// AMActualKg and PMActualKg come from a greedy split: the morning absorbs
// usage up to half the recommendation and the afternoon gets the rest. The
// split is a display heuristic; the usage log carries no time of day.
type FeedReconciliation struct {
	Day           int             `json:"day"`
	RecommendedKg float64         `json:"recommendedKg"`
	FeedType      models.FeedType `json:"feedType"`
	ActualKg      float64         `json:"actualKg"`
	AMActualKg    float64         `json:"amActualKg"`
	PMActualKg    float64         `json:"pmActualKg"`
	// CoveragePct is nil when there is no recommendation to compare against.
	CoveragePct *float64 `json:"coveragePct,omitempty"`
	// TotalKg sums usage over the batch's whole history.
	TotalKg float64 `json:"totalKg"`
}

// LookupForecast finds the forecast entry for day.
func LookupForecast(forecast []models.ForecastEntry, day int) (models.ForecastEntry, bool) {
	for _, entry := range forecast {
		if entry.Day == day {
			return entry, true
		}
	}
	return models.ForecastEntry{}, false
}

// UsageOn sums the quantities logged on the calendar date of when.
func UsageOn(usage []models.UsageLogEntry, when time.Time) float64 {
	var total float64
	for _, entry := range usage {
		if !entry.Date.IsZero() && SameDay(entry.Date, when) {
			total += entry.Quantity
		}
	}
	return total
}

// TotalUsage sums every logged quantity.
func TotalUsage(usage []models.UsageLogEntry) float64 {
	var total float64
	for _, entry := range usage {
		total += entry.Quantity
	}
	return total
}

// Reconcile derives today's feed metrics for production day.
func Reconcile(day int, forecast []models.ForecastEntry, usage []models.UsageLogEntry, today time.Time) FeedReconciliation {
	rec := FeedReconciliation{
		Day:      day,
		FeedType: models.FeedUnknown,
		ActualKg: UsageOn(usage, today),
		TotalKg:  TotalUsage(usage),
	}

	if entry, ok := LookupForecast(forecast, day); ok {
		rec.RecommendedKg = entry.TargetKilos
		if entry.FeedType != "" {
			rec.FeedType = entry.FeedType
		}
	}

	rec.AMActualKg, rec.PMActualKg = SplitAMPM(rec.ActualKg, rec.RecommendedKg)

	if rec.RecommendedKg > 0 {
		pct := rec.ActualKg / rec.RecommendedKg * 100
		rec.CoveragePct = &pct
	}

	return rec
}

// SplitAMPM attributes actual usage to the morning up to half of recommended
// and the remainder to the afternoon.
func SplitAMPM(actual, recommended float64) (am, pm float64) {
	half := recommended / 2
	am = actual
	if am > half {
		am = half
	}
	if actual > half {
		pm = actual - half
	}
	return am, pm
}

// FeedTypeOn labels a logged date with the forecast stage for the matching
// production day, or models.FeedUnknown when it cannot be resolved.
func FeedTypeOn(start, date time.Time, forecast []models.ForecastEntry) models.FeedType {
	if date.IsZero() {
		return models.FeedUnknown
	}
	d, ok := ResolveDay(start, date)
	if !ok || d < 1 {
		return models.FeedUnknown
	}
	if entry, found := LookupForecast(forecast, d); found && entry.FeedType != "" {
		return entry.FeedType
	}
	return models.FeedUnknown
}

// LabelledUsage is a usage log entry tagged with the feed stage it fell in.
type LabelledUsage struct {
	Date     time.Time       `json:"date"`
	Quantity float64         `json:"quantity"`
	FeedType models.FeedType `json:"feedType"`
	Cost     float64         `json:"cost"`
}

// LabelUsage tags every usage entry with FeedTypeOn, keeping log order.
func LabelUsage(start time.Time, usage []models.UsageLogEntry, forecast []models.ForecastEntry) []LabelledUsage {
	out := make([]LabelledUsage, 0, len(usage))
	for _, entry := range usage {
		out = append(out, LabelledUsage{
			Date:     entry.Date,
			Quantity: entry.Quantity,
			FeedType: FeedTypeOn(start, entry.Date, forecast),
			Cost:     entry.Cost(),
		})
	}
	return out
}
