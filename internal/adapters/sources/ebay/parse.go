package ebay

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
)

// soldDatePatterns match the sold-date fragments eBay embeds in listing
// tiles, in order of preference.
var soldDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sold\s+(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`(?i)sold\s+(\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{2,4})`),
	regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{2,4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
}

// parseSearchResults extracts sale records from a search results page.
// The first tile is skipped (it is a promoted ad slot), and listings are
// filtered the same way the site feed was: placeholder tiles and
// PSA-graded cards are dropped, TAG must be mentioned.
func parseSearchResults(html []byte, marketplace sources.Marketplace) ([]sources.RawSale, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var sales []sources.RawSale

	doc.Find(".s-item").Each(func(i int, item *goquery.Selection) {
		if i == 0 {
			return
		}

		sale := sources.RawSale{
			Title:       strings.TrimSpace(item.Find(".s-item__title").First().Text()),
			Price:       strings.TrimSpace(item.Find(".s-item__price").First().Text()),
			Marketplace: marketplace,
		}

		if href, ok := item.Find(".s-item__link").First().Attr("href"); ok {
			sale.ListingURL = href
		}

		img := item.Find(".s-item__image img").First()
		if src, ok := img.Attr("src"); ok {
			sale.Image = src
		} else if src, ok := img.Attr("data-src"); ok {
			sale.Image = src
		}

		sale.SoldDate = findSoldDate(item.Text())
		sale.SoldInfo = strings.TrimSpace(item.Find(".s-item__caption").First().Text())

		if keepListing(sale) {
			sales = append(sales, sale)
		}
	})

	return sales, nil
}

// findSoldDate scans tile text for a sold-date fragment
func findSoldDate(text string) string {
	flattened := strings.Join(strings.Fields(text), " ")
	for _, pattern := range soldDatePatterns {
		if m := pattern.FindStringSubmatch(flattened); m != nil {
			if len(m) > 1 && m[1] != "" {
				return m[1]
			}
			return m[0]
		}
	}
	return ""
}

// keepListing applies the feed's basic filters: real titles only, no
// PSA-graded cards, TAG required.
func keepListing(sale sources.RawSale) bool {
	title := strings.ToLower(sale.Title)

	if title == "" || title == "shop on ebay" {
		return false
	}
	if strings.Contains(title, "psa") {
		return false
	}
	if !strings.Contains(title, "tag") {
		return false
	}
	return true
}
