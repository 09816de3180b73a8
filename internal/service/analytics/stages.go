package analytics

import "github.com/mamadbah2/poultrydash/internal/domain/models"

// StageTotal is the planned feed for one feed stage.
type StageTotal struct {
	FeedType    models.FeedType `json:"feedType"`
	FirstDay    int             `json:"firstDay"`
	LastDay     int             `json:"lastDay"`
	TargetKilos float64         `json:"targetKilos"`
}

// SumTargets adds the target kilos of forecast days in [fromDay, toDay].
func SumTargets(forecast []models.ForecastEntry, fromDay, toDay int) float64 {
	var total float64
	for _, entry := range forecast {
		if entry.Day >= fromDay && entry.Day <= toDay {
			total += entry.TargetKilos
		}
	}
	return total
}

// TotalTarget adds every target in the forecast.
func TotalTarget(forecast []models.ForecastEntry) float64 {
	var total float64
	for _, entry := range forecast {
		total += entry.TargetKilos
	}
	return total
}

// StageTotals groups the forecast by feed stage, in the order stages first
// appear, recording the day span each stage covers.
func StageTotals(forecast []models.ForecastEntry) []StageTotal {
	totals := []StageTotal{}
	index := make(map[models.FeedType]int)

	for _, entry := range forecast {
		i, ok := index[entry.FeedType]
		if !ok {
			index[entry.FeedType] = len(totals)
			totals = append(totals, StageTotal{
				FeedType: entry.FeedType,
				FirstDay: entry.Day,
				LastDay:  entry.Day,
			})
			i = len(totals) - 1
		}

		st := &totals[i]
		st.TargetKilos += entry.TargetKilos
		if entry.Day < st.FirstDay {
			st.FirstDay = entry.Day
		}
		if entry.Day > st.LastDay {
			st.LastDay = entry.Day
		}
	}

	return totals
}

// Phase is a fixed day window of the standard ration plan.
type Phase struct {
	FeedType models.FeedType
	FromDay  int
	ToDay    int
}

// StandardPhases are the feed windows of a 30-day broiler cycle.
var StandardPhases = []Phase{
	{FeedType: models.FeedBooster, FromDay: 1, ToDay: 10},
	{FeedType: models.FeedStarter, FromDay: 11, ToDay: 23},
	{FeedType: models.FeedFinisher, FromDay: 24, ToDay: 30},
}

// PhaseTotal is the planned feed for one standard phase.
type PhaseTotal struct {
	FeedType    models.FeedType `json:"feedType"`
	FromDay     int             `json:"fromDay"`
	ToDay       int             `json:"toDay"`
	TargetKilos float64         `json:"targetKilos"`
}

// PhaseTotals sums the forecast over each of the standard phases, whatever
// stage labels the forecast itself carries.
func PhaseTotals(forecast []models.ForecastEntry) []PhaseTotal {
	totals := make([]PhaseTotal, 0, len(StandardPhases))
	for _, p := range StandardPhases {
		totals = append(totals, PhaseTotal{
			FeedType:    p.FeedType,
			FromDay:     p.FromDay,
			ToDay:       p.ToDay,
			TargetKilos: SumTargets(forecast, p.FromDay, p.ToDay),
		})
	}
	return totals
}

// StageBalance compares a stage's planned feed with the kilos bought for it.
// RemainingKg goes negative when purchases exceed the plan.
type StageBalance struct {
	FeedType    models.FeedType `json:"feedType"`
	TargetKilos float64         `json:"targetKilos"`
	PurchasedKg float64         `json:"purchasedKg"`
	RemainingKg float64         `json:"remainingKg"`
}

// StageRemaining reports, per forecast stage, the planned kilos left to buy.
// Purchases are expense quantities tagged with the stage's feed type.
func StageRemaining(forecast []models.ForecastEntry, expenses []models.ExpenseEntry) []StageBalance {
	purchased := make(map[models.FeedType]float64)
	for _, e := range expenses {
		if e.FeedType == "" || e.FeedType == models.FeedUnknown || e.Quantity <= 0 {
			continue
		}
		purchased[e.FeedType] += e.Quantity
	}

	stages := StageTotals(forecast)
	balances := make([]StageBalance, 0, len(stages))
	for _, st := range stages {
		bought := purchased[st.FeedType]
		balances = append(balances, StageBalance{
			FeedType:    st.FeedType,
			TargetKilos: st.TargetKilos,
			PurchasedKg: bought,
			RemainingKg: st.TargetKilos - bought,
		})
	}
	return balances
}
