// Package sources defines the contract for external sale feeds.
//
// A source produces raw, untrusted sale records. It may return
// duplicates, junk titles, or nothing at all; the matching pipeline
// validates everything downstream.
package sources

import (
	"context"
)

// Marketplace identifies which regional marketplace a sale came from
type Marketplace string

const (
	MarketplaceUK Marketplace = "uk"
	MarketplaceUS Marketplace = "us"
)

// RawSale is a scraped sold-listing record. Title is the only field the
// matching engine depends on; everything else is carried for display.
type RawSale struct {
	Title       string      `json:"title"`
	Price       string      `json:"price"`
	Image       string      `json:"img,omitempty"`
	SoldInfo    string      `json:"soldInfo,omitempty"`
	SoldDate    string      `json:"soldDate,omitempty"`
	ListingURL  string      `json:"listingUrl,omitempty"`
	Marketplace Marketplace `json:"marketplace,omitempty"`
}

// FetchOptions configures how sales are fetched
type FetchOptions struct {
	Marketplace Marketplace
	MaxItems    int // 0 = no limit
}

// SaleSource is the interface all sale feeds must implement
type SaleSource interface {
	// Name identifies the source, e.g. "ebay"
	Name() string

	// FetchSales fetches recent sold listings. An empty slice with a nil
	// error is a valid result; the caller treats it as "no sales found".
	FetchSales(ctx context.Context, opts FetchOptions) ([]RawSale, error)
}
