package models

// BatchDocument mirrors a batch as it is kept in the store. Numeric fields
// are loosely typed because older records hold them as strings; convert with
// the ingest package before use.
type BatchDocument struct {
	ID                   string                     `bson:"_id" json:"id"`
	BatchName            string                     `bson:"batchName" json:"batchName"`
	Status               string                     `bson:"status" json:"status"`
	DateCreated          string                     `bson:"dateCreated" json:"dateCreated"`
	ExpectedCompleteDate string                     `bson:"expectedCompleteDate" json:"expectedCompleteDate"`
	StartingPopulation   any                        `bson:"startingPopulation" json:"startingPopulation"`
	VitaminBudget        any                        `bson:"vitaminBudget,omitempty" json:"vitaminBudget,omitempty"`
	Expenses             map[string]ExpenseDocument `bson:"expenses,omitempty" json:"expenses,omitempty"`
	UsedFeeds            map[string]UsageDocument   `bson:"usedFeeds,omitempty" json:"usedFeeds,omitempty"`
	UsedVitamins         map[string]UsageDocument   `bson:"usedVitamins,omitempty" json:"usedVitamins,omitempty"`
	Sales                map[string]SaleDocument    `bson:"sales,omitempty" json:"sales,omitempty"`
}

// ExpenseDocument is a stored expense record.
type ExpenseDocument struct {
	Category string `bson:"category" json:"category"`
	FeedType string `bson:"feedType,omitempty" json:"feedType,omitempty"`
	ItemName string `bson:"itemName,omitempty" json:"itemName,omitempty"`
	Amount   any    `bson:"amount" json:"amount"`
	Quantity any    `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Date     string `bson:"date,omitempty" json:"date,omitempty"`
}

// UsageDocument is a stored consumed-stock record.
type UsageDocument struct {
	Date         string `bson:"date" json:"date"`
	Quantity     any    `bson:"quantity" json:"quantity"`
	PricePerUnit any    `bson:"pricePerUnit,omitempty" json:"pricePerUnit,omitempty"`
}

// SaleDocument is a stored sale record.
type SaleDocument struct {
	BuyerName      string `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	Quantity       any    `bson:"quantity" json:"quantity"`
	TotalAmount    any    `bson:"totalAmount" json:"totalAmount"`
	DateOfPurchase string `bson:"dateOfPurchase,omitempty" json:"dateOfPurchase,omitempty"`
}
