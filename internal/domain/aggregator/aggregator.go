// Package aggregator rolls scraped sales into per-card price groups.
//
// Every sale with a non-empty title ends in exactly one place: a card's
// sales group, or the unmatched bucket. Results are rebuilt in full on
// every call since the upstream sale set is refreshed wholesale.
package aggregator

import (
	"log/slog"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/matcher"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/pricing"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/variant"
)

// EnrichedSale is a raw sale plus everything matching derived from it.
type EnrichedSale struct {
	sources.RawSale
	MatchConfidence float64         `json:"matchConfidence"`
	MatchedKeywords []string        `json:"matchedKeywords"`
	DetectedVariant variant.Variant `json:"detectedVariant"`
}

// GroupStats is the per-group statistics record. LastSale is the first
// sale of the group in arrival order.
type GroupStats struct {
	pricing.Stats
	LastSale *EnrichedSale `json:"lastSale,omitempty"`
}

// CardSalesGroup collects every sale matched to one canonical card.
type CardSalesGroup struct {
	Card         catalog.CanonicalCard              `json:"card"`
	Sales        []EnrichedSale                     `json:"sales"`
	Variants     map[variant.Variant][]EnrichedSale `json:"variants"`
	Stats        *GroupStats                        `json:"stats,omitempty"`
	VariantStats map[variant.Variant]*GroupStats    `json:"variantStats,omitempty"`
}

// Result is one full aggregation over a sale batch.
type Result struct {
	CardSales      map[string]*CardSalesGroup `json:"cardSales"`
	UnmatchedSales []sources.RawSale          `json:"unmatchedSales"`
	TotalMatched   int                        `json:"totalMatched"`
	TotalUnmatched int                        `json:"totalUnmatched"`
}

// Aggregator groups sales by matched card and computes price statistics
type Aggregator struct {
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// NewAggregator creates an aggregator using the given matcher config
func NewAggregator(cfg matcher.Config, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		matcher: matcher.NewMatcher(cfg),
		logger:  logger,
	}
}

// Group matches every sale against the catalog snapshot and aggregates
// the matches per card and per variant. Sales without a title are
// dropped before matching begins.
func (a *Aggregator) Group(sales []sources.RawSale, cards []catalog.CanonicalCard) *Result {
	result := &Result{
		CardSales:      make(map[string]*CardSalesGroup),
		UnmatchedSales: []sources.RawSale{},
	}

	for _, sale := range sales {
		if matcher.Normalize(sale.Title) == "" {
			continue
		}

		match := a.matcher.MatchCard(sale.Title, cards)
		if match == nil {
			result.UnmatchedSales = append(result.UnmatchedSales, sale)
			continue
		}

		detected := variant.Detect(sale.Title)
		enriched := EnrichedSale{
			RawSale:         sale,
			MatchConfidence: match.Confidence,
			MatchedKeywords: match.MatchedKeywords,
			DetectedVariant: detected,
		}

		group, ok := result.CardSales[match.Card.ID]
		if !ok {
			group = &CardSalesGroup{
				Card:     *match.Card,
				Sales:    []EnrichedSale{},
				Variants: make(map[variant.Variant][]EnrichedSale),
			}
			result.CardSales[match.Card.ID] = group
		}

		group.Sales = append(group.Sales, enriched)
		group.Variants[detected] = append(group.Variants[detected], enriched)
	}

	for _, group := range result.CardSales {
		group.Stats = computeGroupStats(group.Sales)
		group.VariantStats = make(map[variant.Variant]*GroupStats)
		for v, variantSales := range group.Variants {
			if stats := computeGroupStats(variantSales); stats != nil {
				group.VariantStats[v] = stats
			}
		}
		result.TotalMatched += len(group.Sales)
	}
	result.TotalUnmatched = len(result.UnmatchedSales)

	a.logger.Debug("aggregation complete",
		"cards", len(result.CardSales),
		"matched", result.TotalMatched,
		"unmatched", result.TotalUnmatched)

	return result
}

// computeGroupStats computes price statistics for a sale list.
// Returns nil when no sale has a valid positive price.
func computeGroupStats(sales []EnrichedSale) *GroupStats {
	prices := make([]string, len(sales))
	for i, sale := range sales {
		prices[i] = sale.Price
	}

	stats := pricing.ComputeStats(prices)
	if stats == nil {
		return nil
	}

	return &GroupStats{
		Stats:    *stats,
		LastSale: &sales[0],
	}
}
