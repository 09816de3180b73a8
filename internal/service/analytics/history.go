package analytics

import "github.com/mamadbah2/poultrydash/internal/domain/models"

// DefaultHistoryWindow is how many recent batches the comparison chart shows.
const DefaultHistoryWindow = 5

// Financials summarizes a batch's money flows.
type Financials struct {
	Expenses  float64 `json:"expenses"`
	Sales     float64 `json:"sales"`
	NetIncome float64 `json:"netIncome"`
}

// HistoryPoint is one batch in the cross-batch comparison.
type HistoryPoint struct {
	BatchID string             `json:"batchId"`
	Name    string             `json:"name"`
	Status  models.BatchStatus `json:"status"`
	Financials
}

// BatchFinancials totals purchase expenses, priced consumption and sales for
// a batch.
func BatchFinancials(b models.Batch) Financials {
	var f Financials
	f.Expenses = AggregateByCategory(b.Expenses, b.UsedFeeds, b.UsedVitamins).Sum()
	for _, s := range b.Sales {
		f.Sales += s.TotalAmount
	}
	f.NetIncome = f.Sales - f.Expenses
	return f
}

// HistorySeries returns the comparison series for the most recent
// DefaultHistoryWindow completed or active batches, in store order.
func HistorySeries(batches []models.Batch) []HistoryPoint {
	return HistoryWindow(batches, DefaultHistoryWindow)
}

// FullHistory returns the comparison series without truncation.
func FullHistory(batches []models.Batch) []HistoryPoint {
	return HistoryWindow(batches, 0)
}

// HistoryWindow keeps the last window eligible batches; a window of zero or
// less keeps all of them.
func HistoryWindow(batches []models.Batch, window int) []HistoryPoint {
	points := make([]HistoryPoint, 0, len(batches))
	for _, b := range batches {
		if b.Status != models.BatchCompleted && b.Status != models.BatchActive {
			continue
		}
		points = append(points, HistoryPoint{
			BatchID:    b.ID,
			Name:       b.Name,
			Status:     b.Status,
			Financials: BatchFinancials(b),
		})
	}

	if window > 0 && len(points) > window {
		points = points[len(points)-window:]
	}
	return points
}

// Stats is the record-keeping summary of one or more batches.
type Stats struct {
	Batches            int `json:"batches"`
	StartingPopulation int `json:"startingPopulation"`
	HarvestedHeads     int `json:"harvestedHeads"`
	Financials
}

// BatchStats totals population, harvested heads and money flows across
// batches, whatever their status.
func BatchStats(batches ...models.Batch) Stats {
	var st Stats
	for _, b := range batches {
		st.Batches++
		st.StartingPopulation += b.StartingPopulation
		for _, s := range b.Sales {
			st.HarvestedHeads += s.Quantity
		}
		f := BatchFinancials(b)
		st.Expenses += f.Expenses
		st.Sales += f.Sales
	}
	st.NetIncome = st.Sales - st.Expenses
	return st
}
