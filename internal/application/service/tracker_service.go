// Package service wires the scraper, catalog, matcher and storage into
// the tracking workflow.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/aggregator"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/matcher"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/pricing"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/storage"
)

// RunRequest holds parameters for a scrape run.
type RunRequest struct {
	Marketplace sources.Marketplace
	MaxItems    int
}

// RunResult is the outcome of one scrape-and-aggregate run.
type RunResult struct {
	RunID       string             `json:"runId"`
	Marketplace string             `json:"marketplace"`
	StartedAt   time.Time          `json:"startedAt"`
	Aggregation *aggregator.Result `json:"aggregation"`
}

// TrackerService owns the catalog snapshot and runs the matching
// pipeline. The snapshot is swapped atomically on reload so concurrent
// matching always sees a consistent catalog; reloads themselves are
// serialized.
type TrackerService struct {
	cfg    *config.Config
	loader *catalog.Loader
	source sources.SaleSource
	agg    *aggregator.Aggregator
	repo   storage.Repository
	logger *slog.Logger

	snapshot atomic.Pointer[catalog.Snapshot]
	reloadMu sync.Mutex
}

// NewTrackerService creates the service and performs the initial
// catalog load.
func NewTrackerService(
	cfg *config.Config,
	loader *catalog.Loader,
	source sources.SaleSource,
	repo storage.Repository,
	logger *slog.Logger,
) *TrackerService {
	if logger == nil {
		logger = slog.Default()
	}

	matcherCfg := matcher.DefaultConfig()
	if cfg.Matcher.MinConfidence > 0 {
		matcherCfg.MinConfidence = cfg.Matcher.MinConfidence
	}

	s := &TrackerService{
		cfg:    cfg,
		loader: loader,
		source: source,
		agg:    aggregator.NewAggregator(matcherCfg, logger),
		repo:   repo,
		logger: logger,
	}
	s.snapshot.Store(loader.Load())

	return s
}

// Snapshot returns the current catalog snapshot
func (s *TrackerService) Snapshot() *catalog.Snapshot {
	return s.snapshot.Load()
}

// ReloadCatalog discards the cached catalog and re-reads it from disk.
// The new snapshot replaces the old one atomically; only one reload
// runs at a time.
func (s *TrackerService) ReloadCatalog() *catalog.Snapshot {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap := s.loader.Load()
	s.snapshot.Store(snap)
	s.logger.Info("catalog reloaded", "sets", len(snap.Sets), "cards", len(snap.Cards))
	return snap
}

// MatchBatch aggregates a caller-supplied sale batch against the
// current snapshot. Pure computation, nothing is persisted.
func (s *TrackerService) MatchBatch(sales []sources.RawSale) *aggregator.Result {
	return s.agg.Group(sales, s.Snapshot().Cards)
}

// RunScrape fetches sold listings, matches them against the catalog,
// persists the run and returns the aggregation.
func (s *TrackerService) RunScrape(ctx context.Context, req RunRequest) (*RunResult, error) {
	marketplace := req.Marketplace
	if marketplace == "" {
		marketplace = sources.Marketplace(s.cfg.Scraper.Marketplace)
	}
	maxItems := req.MaxItems
	if maxItems == 0 {
		maxItems = s.cfg.Scraper.MaxItems
	}

	run := &storage.ScrapeRun{
		ID:          uuid.New().String(),
		Marketplace: string(marketplace),
		StartedAt:   time.Now().UTC(),
		Status:      storage.RunStatusRunning,
	}
	if err := s.repo.SaveRun(run); err != nil {
		return nil, fmt.Errorf("recording scrape run: %w", err)
	}

	s.logger.Info("scrape run started", "run", run.ID, "marketplace", marketplace)

	sales, err := s.source.FetchSales(ctx, sources.FetchOptions{
		Marketplace: marketplace,
		MaxItems:    maxItems,
	})
	if err != nil {
		if completeErr := s.repo.CompleteRun(run.ID, 0, 0, 0, storage.RunStatusFailed, err.Error()); completeErr != nil {
			s.logger.Error("failed to record run failure", "run", run.ID, "error", completeErr)
		}
		return nil, fmt.Errorf("fetching sales: %w", err)
	}

	result := s.agg.Group(sales, s.Snapshot().Cards)

	if err := s.persistResult(run.ID, result); err != nil {
		// Persistence trouble doesn't invalidate the computed result
		s.logger.Error("failed to persist run results", "run", run.ID, "error", err)
	}

	if err := s.repo.CompleteRun(run.ID, len(sales), result.TotalMatched, result.TotalUnmatched,
		storage.RunStatusCompleted, ""); err != nil {
		s.logger.Error("failed to complete run", "run", run.ID, "error", err)
	}

	s.logger.Info("scrape run completed",
		"run", run.ID,
		"sales", len(sales),
		"matched", result.TotalMatched,
		"unmatched", result.TotalUnmatched)

	return &RunResult{
		RunID:       run.ID,
		Marketplace: string(marketplace),
		StartedAt:   run.StartedAt,
		Aggregation: result,
	}, nil
}

// persistResult flattens an aggregation into storage records
func (s *TrackerService) persistResult(runID string, result *aggregator.Result) error {
	var sales []storage.MatchedSaleRecord
	var stats []storage.CardStatsRecord

	for cardID, group := range result.CardSales {
		for _, sale := range group.Sales {
			sales = append(sales, storage.MatchedSaleRecord{
				RunID:       runID,
				CardID:      cardID,
				CardName:    group.Card.Name,
				Title:       sale.Title,
				RawPrice:    sale.Price,
				Price:       salePrice(sale.Price),
				Confidence:  sale.MatchConfidence,
				Variant:     string(sale.DetectedVariant),
				SoldInfo:    sale.SoldInfo,
				ListingURL:  sale.ListingURL,
				Marketplace: string(sale.Marketplace),
			})
		}

		if group.Stats != nil {
			stats = append(stats, statsRecord(runID, cardID, "", &group.Stats.Stats))
		}
		for v, variantStats := range group.VariantStats {
			stats = append(stats, statsRecord(runID, cardID, string(v), &variantStats.Stats))
		}
	}

	if err := s.repo.SaveMatchedSales(sales); err != nil {
		return err
	}
	return s.repo.SaveCardStats(stats)
}

// salePrice parses a raw price for persistence; 0 means unparsable
func salePrice(raw string) float64 {
	return pricing.ParsePrice(raw)
}

// statsRecord converts computed stats into a storage record
func statsRecord(runID, cardID, variantLabel string, stats *pricing.Stats) storage.CardStatsRecord {
	return storage.CardStatsRecord{
		RunID:        runID,
		CardID:       cardID,
		Variant:      variantLabel,
		Count:        stats.Count,
		AveragePrice: stats.AveragePrice,
		MedianPrice:  stats.MedianPrice,
		MinPrice:     stats.MinPrice,
		MaxPrice:     stats.MaxPrice,
		PriceRange:   stats.PriceRange,
	}
}
