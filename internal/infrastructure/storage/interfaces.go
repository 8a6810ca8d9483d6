package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing
// with an in-memory fake straightforward.
type Repository interface {
	RunRepository
	SaleRepository
	StatsRepository
	Close() error
}

// RunRepository tracks scrape runs
type RunRepository interface {
	// SaveRun records the start of a scrape run
	SaveRun(run *ScrapeRun) error

	// CompleteRun records run totals and final status
	CompleteRun(runID string, totalSales, matched, unmatched int, status, errorMessage string) error

	// GetRun retrieves a run by ID
	GetRun(runID string) (*ScrapeRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]ScrapeRun, error)
}

// SaleRepository persists matched sales per run
type SaleRepository interface {
	// SaveMatchedSales stores all matched sales of a run
	SaveMatchedSales(sales []MatchedSaleRecord) error

	// GetMatchedSales retrieves the matched sales of a run
	GetMatchedSales(runID string) ([]MatchedSaleRecord, error)
}

// StatsRepository persists per-card statistics snapshots
type StatsRepository interface {
	// SaveCardStats stores all stats records of a run
	SaveCardStats(stats []CardStatsRecord) error

	// GetCardStats retrieves the stats records of a run
	GetCardStats(runID string) ([]CardStatsRecord, error)
}
