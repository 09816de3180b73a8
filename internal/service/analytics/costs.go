package analytics

import "github.com/mamadbah2/poultrydash/internal/domain/models"

// Labels of the synthetic buckets fed by the consumed-stock ledgers.
const (
	ConsumedFeedsLabel    = "Feeds (Consumed)"
	ConsumedVitaminsLabel = "Vitamins (Consumed)"
)

// CostBucket is one slice of the spend distribution.
type CostBucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// CostDistribution lists buckets in first-seen order.
type CostDistribution []CostBucket

// Lookup returns the total recorded under label.
func (d CostDistribution) Lookup(label string) (float64, bool) {
	for _, bucket := range d {
		if bucket.Label == label {
			return bucket.Total, true
		}
	}
	return 0, false
}

// Sum totals every bucket.
func (d CostDistribution) Sum() float64 {
	var total float64
	for _, bucket := range d {
		total += bucket.Total
	}
	return total
}

// AggregateByCategory folds purchase expenses by category, then appends the
// priced consumption of feeds and vitamins under their own labels when they
// cost anything.
func AggregateByCategory(expenses []models.ExpenseEntry, consumedFeeds, consumedVitamins []models.UsageLogEntry) CostDistribution {
	dist := CostDistribution{}
	index := make(map[string]int)

	add := func(label string, cost float64) {
		if i, ok := index[label]; ok {
			dist[i].Total += cost
			return
		}
		index[label] = len(dist)
		dist = append(dist, CostBucket{Label: label, Total: cost})
	}

	for _, e := range expenses {
		add(e.Category, e.Cost())
	}

	if cost := consumedCost(consumedFeeds); cost > 0 {
		add(ConsumedFeedsLabel, cost)
	}
	if cost := consumedCost(consumedVitamins); cost > 0 {
		add(ConsumedVitaminsLabel, cost)
	}

	return dist
}

func consumedCost(entries []models.UsageLogEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.Cost()
	}
	return total
}
