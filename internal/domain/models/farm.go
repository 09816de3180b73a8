package models

import "time"

// BatchStatus enumerates the lifecycle states of a production batch.
type BatchStatus string

const (
	BatchActive    BatchStatus = "active"
	BatchInactive  BatchStatus = "inactive"
	BatchCompleted BatchStatus = "completed"
)

// Batch is one production cycle of birds, fully parsed from the store.
// Zero StartDate or ExpectedCompleteDate means the date was not recorded.
type Batch struct {
	ID                   string
	Name                 string
	Status               BatchStatus
	StartDate            time.Time
	ExpectedCompleteDate time.Time
	StartingPopulation   int
	VitaminBudget        float64

	Expenses     []ExpenseEntry
	UsedFeeds    []UsageLogEntry
	UsedVitamins []UsageLogEntry
	Sales        []SaleEntry
}

// IsActive reports whether the batch is the running cycle.
func (b Batch) IsActive() bool {
	return b.Status == BatchActive
}

// UsageLogEntry records stock drawn down on a calendar date. Several entries
// may share the same date.
type UsageLogEntry struct {
	Date         time.Time
	Quantity     float64
	PricePerUnit *float64
}

// Cost returns price × quantity, or zero when no price was recorded.
func (u UsageLogEntry) Cost() float64 {
	if u.PricePerUnit == nil {
		return 0
	}
	return *u.PricePerUnit * u.Quantity
}

// ExpenseEntry captures a point-of-purchase operating expense.
type ExpenseEntry struct {
	Category string
	ItemName string
	Amount   float64 // unit price
	Quantity float64
	FeedType FeedType
	Date     time.Time
}

// Cost returns amount × quantity. A missing quantity counts as one unit.
func (e ExpenseEntry) Cost() float64 {
	qty := e.Quantity
	if qty <= 0 {
		qty = 1
	}
	return e.Amount * qty
}

// SaleEntry captures a sale of birds.
type SaleEntry struct {
	BuyerName   string
	TotalAmount float64
	Quantity    int
	Date        time.Time
}
