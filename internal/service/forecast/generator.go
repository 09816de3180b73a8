// Package forecast builds daily feed targets for a batch from its starting
// population.
package forecast

import (
	"math"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

// Days is the length of a generated forecast.
const Days = 30

// band is a run of days sharing a per-1,000-bird daily ration.
type band struct {
	from, to int
	kgPerK   float64
	feedType models.FeedType
}

var rations = []band{
	{1, 1, 0.60, models.FeedBooster},
	{2, 3, 0.70, models.FeedBooster},
	{4, 6, 0.80, models.FeedBooster},
	{7, 10, 0.90, models.FeedBooster},
	{11, 13, 1.00, models.FeedStarter},
	{14, 16, 1.20, models.FeedStarter},
	{17, 19, 1.40, models.FeedStarter},
	{20, 21, 1.50, models.FeedStarter},
	{22, 23, 1.60, models.FeedStarter},
	{24, 24, 2.00, models.FeedFinisher},
	{25, 25, 2.40, models.FeedFinisher},
	{26, 26, 2.60, models.FeedFinisher},
	{27, 27, 3.00, models.FeedFinisher},
	{28, 28, 3.20, models.FeedFinisher},
	{29, 30, 3.40, models.FeedFinisher},
}

// Generate returns one entry per day for a flock of population birds.
// Targets are rounded to two decimals. A non-positive population yields
// zero targets with the stage labels still set.
func Generate(population int) []models.ForecastEntry {
	if population < 0 {
		population = 0
	}
	multiplier := float64(population) / 1000

	entries := make([]models.ForecastEntry, 0, Days)
	for d := 1; d <= Days; d++ {
		b, ok := rationFor(d)
		if !ok {
			continue
		}
		entries = append(entries, models.ForecastEntry{
			Day:         d,
			FeedType:    b.feedType,
			TargetKilos: round2(b.kgPerK * multiplier),
		})
	}
	return entries
}

func rationFor(day int) (band, bool) {
	for _, b := range rations {
		if day >= b.from && day <= b.to {
			return b, true
		}
	}
	return band{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
