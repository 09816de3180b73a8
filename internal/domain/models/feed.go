package models

// FeedType names a nutritional stage of a batch.
type FeedType string

const (
	FeedBooster  FeedType = "Booster"
	FeedStarter  FeedType = "Starter"
	FeedFinisher FeedType = "Finisher"
	// FeedUnknown is reported when no forecast entry covers a day.
	FeedUnknown FeedType = "N/A"
)

// ForecastEntry is the planned feed target for one production day.
type ForecastEntry struct {
	Day         int      `json:"day"`
	FeedType    FeedType `json:"feedType"`
	TargetKilos float64  `json:"targetKilos"`
}

// Forecast is the payload exchanged with forecast backends.
type Forecast struct {
	BatchName string          `json:"batchName"`
	Entries   []ForecastEntry `json:"forecast"`
}
