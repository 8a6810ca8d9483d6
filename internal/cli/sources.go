package cli

import (
	"log/slog"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources/ebay"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
)

// NewEbaySource builds the eBay sold-listings scraper from config.
// Timeout and user agent defaults are applied at config load time.
func NewEbaySource(cfg *config.Config, logger *slog.Logger) sources.SaleSource {
	return ebay.NewScraper(ebay.Config{
		Timeout:   cfg.Scraper.Timeout,
		UserAgent: cfg.Scraper.UserAgent,
	}, logger)
}
