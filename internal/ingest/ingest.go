// Package ingest converts loosely typed store documents into fully formed
// domain values. Malformed numbers become zero and unparseable dates become
// the zero time, so nothing downstream sees NaN or has to re-validate.
package ingest

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

const dateLayout = "2006-01-02"

// UncategorizedLabel replaces empty expense categories.
const UncategorizedLabel = "Uncategorized"

// Batch converts a stored batch document. Keyed children are ordered by key,
// which for push-style keys is insertion order.
func Batch(doc models.BatchDocument) models.Batch {
	b := models.Batch{
		ID:                   doc.ID,
		Name:                 strings.TrimSpace(doc.BatchName),
		Status:               Status(doc.Status),
		StartDate:            Date(doc.DateCreated),
		ExpectedCompleteDate: Date(doc.ExpectedCompleteDate),
		StartingPopulation:   Int(doc.StartingPopulation),
		VitaminBudget:        Float(doc.VitaminBudget),
	}

	for _, key := range sortedKeys(doc.Expenses) {
		b.Expenses = append(b.Expenses, Expense(doc.Expenses[key]))
	}
	for _, key := range sortedKeys(doc.UsedFeeds) {
		b.UsedFeeds = append(b.UsedFeeds, Usage(doc.UsedFeeds[key]))
	}
	for _, key := range sortedKeys(doc.UsedVitamins) {
		b.UsedVitamins = append(b.UsedVitamins, Usage(doc.UsedVitamins[key]))
	}
	for _, key := range sortedKeys(doc.Sales) {
		b.Sales = append(b.Sales, Sale(doc.Sales[key]))
	}

	return b
}

// Expense converts a stored expense record.
func Expense(doc models.ExpenseDocument) models.ExpenseEntry {
	category := strings.TrimSpace(doc.Category)
	if category == "" {
		category = UncategorizedLabel
	}
	return models.ExpenseEntry{
		Category: category,
		ItemName: strings.TrimSpace(doc.ItemName),
		Amount:   Float(doc.Amount),
		Quantity: max(0, Float(doc.Quantity)),
		FeedType: FeedType(doc.FeedType),
		Date:     Date(doc.Date),
	}
}

// Usage converts a stored consumed-stock record. The price stays nil unless
// a usable number was recorded.
func Usage(doc models.UsageDocument) models.UsageLogEntry {
	entry := models.UsageLogEntry{
		Date:     Date(doc.Date),
		Quantity: max(0, Float(doc.Quantity)),
	}
	if price, ok := parseFloat(doc.PricePerUnit); ok && price >= 0 {
		entry.PricePerUnit = &price
	}
	return entry
}

// Sale converts a stored sale record. Quantities below zero read as zero,
// as they do for expenses and usage.
func Sale(doc models.SaleDocument) models.SaleEntry {
	return models.SaleEntry{
		BuyerName:   strings.TrimSpace(doc.BuyerName),
		TotalAmount: Float(doc.TotalAmount),
		Quantity:    max(0, Int(doc.Quantity)),
		Date:        Date(doc.DateOfPurchase),
	}
}

// Status normalizes a stored status. Unknown values are treated as inactive.
func Status(value string) models.BatchStatus {
	switch models.BatchStatus(strings.ToLower(strings.TrimSpace(value))) {
	case models.BatchActive:
		return models.BatchActive
	case models.BatchCompleted:
		return models.BatchCompleted
	default:
		return models.BatchInactive
	}
}

// FeedType normalizes a stored feed stage name. Empty or unknown names map
// to models.FeedUnknown.
func FeedType(value string) models.FeedType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "booster":
		return models.FeedBooster
	case "starter":
		return models.FeedStarter
	case "finisher":
		return models.FeedFinisher
	default:
		return models.FeedUnknown
	}
}

// Date parses the calendar date prefix of value (YYYY-MM-DD). Anything else
// yields the zero time.
func Date(value string) time.Time {
	str := strings.TrimSpace(value)
	if len(str) > len(dateLayout) {
		str = str[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, str)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Float coerces a stored number or numeric string; malformed input is 0.
func Float(value any) float64 {
	f, ok := parseFloat(value)
	if !ok {
		return 0
	}
	return f
}

// Int coerces a stored count, truncating fractions; malformed input is 0.
func Int(value any) int {
	return int(Float(value))
}

func parseFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
