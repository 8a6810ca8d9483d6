package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for scrape run history.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun records the start of a scrape run
func (s *Storage) SaveRun(run *ScrapeRun) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = RunStatusRunning
	}

	_, err := s.db.Exec(`
		INSERT INTO scrape_runs (id, marketplace, started_at, status)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Marketplace, run.StartedAt, run.Status)
	return err
}

// CompleteRun records run totals and final status
func (s *Storage) CompleteRun(runID string, totalSales, matched, unmatched int, status, errorMessage string) error {
	res, err := s.db.Exec(`
		UPDATE scrape_runs
		SET completed_at = ?, total_sales = ?, total_matched = ?, total_unmatched = ?,
		    status = ?, error_message = ?
		WHERE id = ?
	`, time.Now().UTC(), totalSales, matched, unmatched, status, errorMessage, runID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *Storage) GetRun(runID string) (*ScrapeRun, error) {
	run := &ScrapeRun{}
	var completedAt sql.NullTime
	var errorMessage sql.NullString

	err := s.db.QueryRow(`
		SELECT id, marketplace, started_at, completed_at,
		       total_sales, total_matched, total_unmatched, status, error_message
		FROM scrape_runs WHERE id = ?
	`, runID).Scan(
		&run.ID,
		&run.Marketplace,
		&run.StartedAt,
		&completedAt,
		&run.TotalSales,
		&run.TotalMatched,
		&run.TotalUnmatched,
		&run.Status,
		&errorMessage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	run.ErrorMessage = errorMessage.String
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]ScrapeRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, marketplace, started_at, completed_at,
		       total_sales, total_matched, total_unmatched, status, error_message
		FROM scrape_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []ScrapeRun
	for rows.Next() {
		var run ScrapeRun
		var completedAt sql.NullTime
		var errorMessage sql.NullString

		if err := rows.Scan(
			&run.ID,
			&run.Marketplace,
			&run.StartedAt,
			&completedAt,
			&run.TotalSales,
			&run.TotalMatched,
			&run.TotalUnmatched,
			&run.Status,
			&errorMessage,
		); err != nil {
			return nil, err
		}

		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		run.ErrorMessage = errorMessage.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// SaveMatchedSales stores all matched sales of a run in one transaction
func (s *Storage) SaveMatchedSales(sales []MatchedSaleRecord) error {
	if len(sales) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO matched_sales
		(run_id, card_id, card_name, title, raw_price, price, confidence,
		 variant, sold_info, listing_url, marketplace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, sale := range sales {
		if _, err := stmt.Exec(
			sale.RunID,
			sale.CardID,
			sale.CardName,
			sale.Title,
			sale.RawPrice,
			sale.Price,
			sale.Confidence,
			sale.Variant,
			sale.SoldInfo,
			sale.ListingURL,
			sale.Marketplace,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting matched sale: %w", err)
		}
	}

	return tx.Commit()
}

// GetMatchedSales retrieves the matched sales of a run
func (s *Storage) GetMatchedSales(runID string) ([]MatchedSaleRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, card_id, card_name, title, raw_price, price,
		       confidence, variant, sold_info, listing_url, marketplace
		FROM matched_sales WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sales []MatchedSaleRecord
	for rows.Next() {
		var sale MatchedSaleRecord
		if err := rows.Scan(
			&sale.ID,
			&sale.RunID,
			&sale.CardID,
			&sale.CardName,
			&sale.Title,
			&sale.RawPrice,
			&sale.Price,
			&sale.Confidence,
			&sale.Variant,
			&sale.SoldInfo,
			&sale.ListingURL,
			&sale.Marketplace,
		); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// SaveCardStats stores all stats records of a run in one transaction
func (s *Storage) SaveCardStats(stats []CardStatsRecord) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO card_stats
		(run_id, card_id, variant, count, average_price, median_price,
		 min_price, max_price, price_range)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, record := range stats {
		if _, err := stmt.Exec(
			record.RunID,
			record.CardID,
			record.Variant,
			record.Count,
			record.AveragePrice,
			record.MedianPrice,
			record.MinPrice,
			record.MaxPrice,
			record.PriceRange,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting card stats: %w", err)
		}
	}

	return tx.Commit()
}

// GetCardStats retrieves the stats records of a run
func (s *Storage) GetCardStats(runID string) ([]CardStatsRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, card_id, variant, count, average_price,
		       median_price, min_price, max_price, price_range
		FROM card_stats WHERE run_id = ?
		ORDER BY card_id, variant
	`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var stats []CardStatsRecord
	for rows.Next() {
		var record CardStatsRecord
		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.CardID,
			&record.Variant,
			&record.Count,
			&record.AveragePrice,
			&record.MedianPrice,
			&record.MinPrice,
			&record.MaxPrice,
			&record.PriceRange,
		); err != nil {
			return nil, err
		}
		stats = append(stats, record)
	}

	return stats, rows.Err()
}
