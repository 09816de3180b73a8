package models

import "time"

// DashboardReport is the persisted daily snapshot of an active batch's view.
type DashboardReport struct {
	ID             string    `bson:"_id" json:"id"`
	Date           time.Time `bson:"date" json:"date"`
	BatchID        string    `bson:"batch_id" json:"batch_id"`
	BatchName      string    `bson:"batch_name" json:"batch_name"`
	Day            int       `bson:"day" json:"day"`
	FeedType       FeedType  `bson:"feed_type" json:"feed_type"`
	RecommendedKg  float64   `bson:"recommended_kg" json:"recommended_kg"`
	ActualKg       float64   `bson:"actual_kg" json:"actual_kg"`
	FeedConsumedKg float64   `bson:"feed_consumed_kg" json:"feed_consumed_kg"`
	SalesAmount    float64   `bson:"sales_amount" json:"sales_amount"`
	Expenses       float64   `bson:"expenses" json:"expenses"`
	Profit         float64   `bson:"profit" json:"profit"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
