package matcher

import (
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
)

// Weights holds the relative weight of each scoring signal.
// Name tokens and card numbers dominate because they are the most
// discriminating signals between near-identical cards within a set.
type Weights struct {
	Keyword float64 // matching-keyword substring hits
	Name    float64 // card name token overlap
	Number  float64 // formatted card number match
	Set     float64 // set code / set name match
}

// Config holds matcher configuration
type Config struct {
	Weights             Weights
	PartialNumberCredit float64 // credit for matching just "NNN/" of the full number
	GradingPenalty      float64 // multiplier applied when a competing grader is mentioned
	MinConfidence       float64 // results at or below this score are discarded
}

// DefaultConfig returns the reference weighting scheme
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Keyword: 2,
			Name:    4,
			Number:  2,
			Set:     1,
		},
		PartialNumberCredit: 0.5,
		GradingPenalty:      0.1,
		MinConfidence:       0.5,
	}
}

// MatchResult contains match information for a sale title.
// A result only exists when confidence is strictly above the
// configured minimum; low-confidence candidates are never surfaced.
type MatchResult struct {
	Card            *catalog.CanonicalCard
	Confidence      float64
	MatchedKeywords []string
}
