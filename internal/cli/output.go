package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/application/service"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/variant"
)

// PrintRunHeader prints the scrape run banner
func PrintRunHeader(marketplace string) {
	fmt.Printf("tag-sales-scraper: eBay %s sold listings\n\n", marketplace)
}

// PrintRunSummary prints the per-card aggregation of one scrape run.
func PrintRunSummary(result *service.RunResult) {
	agg := result.Aggregation

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Run %s: matched=%d unmatched=%d\n",
		result.RunID, agg.TotalMatched, agg.TotalUnmatched)

	// Stable output order by card name
	cardIDs := make([]string, 0, len(agg.CardSales))
	for id := range agg.CardSales {
		cardIDs = append(cardIDs, id)
	}
	sort.Slice(cardIDs, func(i, j int) bool {
		return agg.CardSales[cardIDs[i]].Card.Name < agg.CardSales[cardIDs[j]].Card.Name
	})

	for _, id := range cardIDs {
		group := agg.CardSales[id]
		fmt.Printf("\n%s (%s) - %d sale(s)\n", group.Card.Name, group.Card.FullNumber, len(group.Sales))

		if group.Stats != nil {
			fmt.Printf("  avg £%.2f | median £%.2f | min £%.2f | max £%.2f\n",
				group.Stats.AveragePrice, group.Stats.MedianPrice, group.Stats.MinPrice, group.Stats.MaxPrice)
		}
		for _, v := range variant.All() {
			stats, ok := group.VariantStats[v]
			if !ok {
				continue
			}
			fmt.Printf("  %-12s avg £%.2f over %d sale(s)\n", v, stats.AveragePrice, stats.Count)
		}
	}

	if agg.TotalUnmatched > 0 {
		fmt.Printf("\nUnmatched titles:\n")
		for _, sale := range agg.UnmatchedSales {
			fmt.Printf("  - %s (%s)\n", sale.Title, sale.Price)
		}
	}
}
