package storage

import "time"

// ScrapeRun records one scrape-and-aggregate run.
type ScrapeRun struct {
	ID             string     `json:"id"`
	Marketplace    string     `json:"marketplace"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	TotalSales     int        `json:"total_sales"`
	TotalMatched   int        `json:"total_matched"`
	TotalUnmatched int        `json:"total_unmatched"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
}

// Run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// MatchedSaleRecord is one matched sale persisted for run history.
type MatchedSaleRecord struct {
	ID          int64   `json:"id"`
	RunID       string  `json:"run_id"`
	CardID      string  `json:"card_id"`
	CardName    string  `json:"card_name"`
	Title       string  `json:"title"`
	RawPrice    string  `json:"raw_price"`
	Price       float64 `json:"price"`
	Confidence  float64 `json:"confidence"`
	Variant     string  `json:"variant"`
	SoldInfo    string  `json:"sold_info,omitempty"`
	ListingURL  string  `json:"listing_url,omitempty"`
	Marketplace string  `json:"marketplace,omitempty"`
}

// CardStatsRecord is a per-card (or per-card-per-variant) statistics
// snapshot from one run. An empty Variant means the whole card group.
type CardStatsRecord struct {
	ID           int64   `json:"id"`
	RunID        string  `json:"run_id"`
	CardID       string  `json:"card_id"`
	Variant      string  `json:"variant,omitempty"`
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
	MedianPrice  float64 `json:"median_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	PriceRange   float64 `json:"price_range"`
}
