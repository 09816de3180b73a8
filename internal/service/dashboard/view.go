package dashboard

import (
	"time"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
	"github.com/mamadbah2/poultrydash/internal/service/analytics"
)

const dateLayout = "2006-01-02"

// View is the read-only dashboard model handed to the rendering layer.
type View struct {
	HasBatch             bool               `json:"hasBatch"`
	BatchID              string             `json:"batchId,omitempty"`
	BatchName            string             `json:"batchName,omitempty"`
	Status               models.BatchStatus `json:"status,omitempty"`
	StartDate            string             `json:"startDate,omitempty"`
	ExpectedCompleteDate string             `json:"expectedCompleteDate,omitempty"`
	StartingPopulation   int                `json:"startingPopulation"`
	HarvestedHeads       int                `json:"harvestedHeads"`

	Day           int  `json:"day"`
	DayResolved   bool `json:"dayResolved"`
	ProgressPct   int  `json:"progressPct"`
	DaysRemaining int  `json:"daysRemaining"`

	Feed              analytics.FeedReconciliation `json:"feed"`
	ForecastAvailable bool                         `json:"forecastAvailable"`
	Forecast          []models.ForecastEntry       `json:"forecast"`
	Stages            []analytics.StageTotal       `json:"stages"`
	Phases            []analytics.PhaseTotal       `json:"phases"`
	StageBalances     []analytics.StageBalance     `json:"stageBalances"`
	ForecastTotalKg   float64                      `json:"forecastTotalKg"`
	FeedLog           []analytics.LabelledUsage    `json:"feedLog"`

	Financials       analytics.Financials       `json:"financials"`
	CostDistribution analytics.CostDistribution `json:"costDistribution"`
	Vitamins         VitaminBudget              `json:"vitamins"`
	History          []analytics.HistoryPoint   `json:"history"`

	Warnings    []string  `json:"warnings,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// VitaminBudget tracks priced vitamin consumption against the batch budget.
type VitaminBudget struct {
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// compose derives every metric for batch from one consistent set of inputs.
func (s *Service) compose(batch models.Batch, forecast models.Forecast, available bool, batches []models.Batch) View {
	now := s.now().In(s.loc)
	start := s.inLocation(batch.StartDate)
	end := s.inLocation(batch.ExpectedCompleteDate)

	forecastEntries := forecast.Entries
	if forecastEntries == nil {
		forecastEntries = []models.ForecastEntry{}
	}
	costs := analytics.AggregateByCategory(batch.Expenses, batch.UsedFeeds, batch.UsedVitamins)
	vitaminsSpent, _ := costs.Lookup(analytics.ConsumedVitaminsLabel)

	view := View{
		HasBatch:             true,
		BatchID:              batch.ID,
		BatchName:            batch.Name,
		Status:               batch.Status,
		StartDate:            formatDate(batch.StartDate),
		ExpectedCompleteDate: formatDate(batch.ExpectedCompleteDate),
		StartingPopulation:   batch.StartingPopulation,
		HarvestedHeads:       analytics.BatchStats(batch).HarvestedHeads,
		ProgressPct:          analytics.ProgressPercent(start, end, now),
		DaysRemaining:        analytics.DaysRemaining(end, now),
		ForecastAvailable:    available,
		Forecast:             forecastEntries,
		Stages:               analytics.StageTotals(forecastEntries),
		Phases:               analytics.PhaseTotals(forecastEntries),
		StageBalances:        analytics.StageRemaining(forecastEntries, batch.Expenses),
		ForecastTotalKg:      analytics.TotalTarget(forecastEntries),
		FeedLog:              analytics.LabelUsage(batch.StartDate, batch.UsedFeeds, forecastEntries),
		Financials:           analytics.BatchFinancials(batch),
		CostDistribution:     costs,
		Vitamins: VitaminBudget{
			Budget:    batch.VitaminBudget,
			Spent:     vitaminsSpent,
			Remaining: batch.VitaminBudget - vitaminsSpent,
		},
		History:     analytics.HistoryWindow(batches, s.historyWindow),
		GeneratedAt: now,
	}

	view.Day, view.DayResolved = analytics.ResolveDay(batch.StartDate, now)

	entries := forecastEntries
	switch {
	case !view.DayResolved:
		entries = nil
		view.Warnings = append(view.Warnings, "batch start date is missing")
	case view.Day < 1:
		entries = nil
		view.Warnings = append(view.Warnings, "batch has not started yet")
	}
	view.Feed = analytics.Reconcile(view.Day, entries, batch.UsedFeeds, now)

	if !available {
		view.Warnings = append(view.Warnings, ErrForecastUnavailable.Error())
	}

	return view
}

// inLocation reads a stored calendar date as midnight in the farm's timezone.
func (s *Service) inLocation(d time.Time) time.Time {
	if d.IsZero() {
		return d
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
