// Package pricing parses marketplace price strings and computes
// descriptive statistics over groups of sale prices.
package pricing

import (
	"sort"
	"strconv"
	"strings"
)

// Stats holds descriptive price statistics for a group of sales.
// Count covers valid-priced sales only; sales whose price failed to
// parse stay in the group for display but never enter the statistics.
type Stats struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
	MedianPrice  float64 `json:"medianPrice"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
	PriceRange   float64 `json:"priceRange"`
}

// ParsePrice extracts a numeric price from a currency-formatted string.
// It is currency-symbol-agnostic ("£1,299.99", "$45.00") since source
// records mix marketplaces. Returns 0 when nothing parses.
func ParsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return price
}

// ComputeStats computes statistics over the given price strings.
// Non-positive and unparsable prices are discarded from the statistical
// set. Returns nil when no valid prices remain, never a zeroed record.
//
// The median is the element at floor(n/2) of the sorted prices, not the
// averaged median, to stay compatible with historical output.
func ComputeStats(rawPrices []string) *Stats {
	valid := make([]float64, 0, len(rawPrices))
	for _, raw := range rawPrices {
		if p := ParsePrice(raw); p > 0 {
			valid = append(valid, p)
		}
	}

	if len(valid) == 0 {
		return nil
	}

	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range sorted {
		sum += p
	}

	return &Stats{
		Count:        len(sorted),
		AveragePrice: sum / float64(len(sorted)),
		MedianPrice:  sorted[len(sorted)/2],
		MinPrice:     sorted[0],
		MaxPrice:     sorted[len(sorted)-1],
		PriceRange:   sorted[len(sorted)-1] - sorted[0],
	}
}
