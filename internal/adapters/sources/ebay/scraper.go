// Package ebay scrapes sold TAG-graded Pokemon listings from eBay
// completed-listings search results.
package ebay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
)

// search URLs per marketplace: sold + completed listings for
// "TAG 10 Pokemon", with PSA excluded at the query level already
const (
	searchURLUK = "https://www.ebay.co.uk/sch/i.html?_nkw=TAG+10+Pokemon+-PSA&_sacat=0&_from=R40&LH_PrefLoc=2&rt=nc&LH_Sold=1&LH_Complete=1"
	searchURLUS = "https://www.ebay.com/sch/i.html?_nkw=TAG+10+Pokemon+-PSA&_sacat=0&_from=R40&rt=nc&LH_Sold=1&LH_Complete=1"
)

// Config holds scraper settings
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Scraper fetches sold listings from eBay search pages.
type Scraper struct {
	client *resty.Client
	logger *slog.Logger
}

// Compile-time check that Scraper implements SaleSource
var _ sources.SaleSource = (*Scraper)(nil)

// NewScraper creates an eBay scraper
func NewScraper(cfg Config, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Scraper{
		client: client,
		logger: logger,
	}
}

// Name identifies the source
func (s *Scraper) Name() string {
	return "ebay"
}

// FetchSales fetches and parses one page of sold listings.
// Listings that fail to parse are dropped, not surfaced as errors;
// the result is simply a shorter batch.
func (s *Scraper) FetchSales(ctx context.Context, opts sources.FetchOptions) ([]sources.RawSale, error) {
	url := searchURLUK
	marketplace := sources.MarketplaceUK
	if opts.Marketplace == sources.MarketplaceUS {
		url = searchURLUS
		marketplace = sources.MarketplaceUS
	}

	s.logger.Debug("fetching sold listings", "marketplace", marketplace, "url", url)

	res, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching sold listings: %w", err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("fetching sold listings: unexpected status %d", res.StatusCode())
	}

	sales, err := parseSearchResults(res.Body(), marketplace)
	if err != nil {
		return nil, fmt.Errorf("parsing sold listings: %w", err)
	}

	if opts.MaxItems > 0 && len(sales) > opts.MaxItems {
		sales = sales[:opts.MaxItems]
	}

	s.logger.Info("scraped sold listings", "marketplace", marketplace, "items", len(sales))
	return sales, nil
}
