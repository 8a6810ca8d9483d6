// Package matcher decides which canonical card a scraped sale title
// refers to.
//
// Scoring is a weighted sum of sub-signals (keyword overlap, name-token
// overlap, card-number match, set match) normalized by the maximum
// achievable score, so the result is always in [0,1]. Titles that
// mention a competing grading company are heavily penalized but not
// rejected outright.
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig())
//	result := m.MatchCard(sale.Title, snapshot.Cards)
//	if result != nil {
//		// Found a match!
//	}
package matcher

import (
	"strings"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
)

// hobbyTerms gate scoring: a title mentioning none of these cannot be
// a TAG-graded Pokemon listing, so it is rejected before any scoring work.
var hobbyTerms = []string{"pokemon", "pokémon", "pkmn", "tag"}

// competingGraders trigger the grading penalty. TAG itself is absent on
// purpose: TAG-graded listings are exactly what we want to keep.
var competingGraders = []string{"psa", "cgc", "bgs", "sgc"}

// Matcher matches sale titles against catalog cards
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config) *Matcher {
	return &Matcher{
		config: config,
	}
}

// Normalize lowercases and trims a raw sale title into the canonical
// comparison form. Pure and idempotent.
func Normalize(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// MatchCard finds the best matching catalog card for a title.
// Returns nil if no card scores strictly above MinConfidence.
// Ties are broken by catalog order: the first card seen wins.
func (m *Matcher) MatchCard(title string, cards []catalog.CanonicalCard) *MatchResult {
	normalized := Normalize(title)
	if normalized == "" {
		return nil
	}

	var best *catalog.CanonicalCard
	bestScore := m.config.MinConfidence

	for i := range cards {
		score := m.Score(normalized, &cards[i])
		if score > bestScore {
			bestScore = score
			best = &cards[i]
		}
	}

	if best == nil {
		return nil
	}

	return &MatchResult{
		Card:            best,
		Confidence:      bestScore,
		MatchedKeywords: matchedKeywords(normalized, best),
	}
}

// Score computes the confidence in [0,1] that a normalized title refers
// to the given card.
func (m *Matcher) Score(normalizedTitle string, card *catalog.CanonicalCard) float64 {
	if !containsAny(normalizedTitle, hobbyTerms) {
		return 0
	}

	w := m.config.Weights
	var score, maxScore float64

	// Keyword overlap: fraction of matching keywords present as substrings
	if len(card.MatchingKeywords) > 0 {
		hits := 0
		for _, kw := range card.MatchingKeywords {
			if strings.Contains(normalizedTitle, strings.ToLower(kw)) {
				hits++
			}
		}
		score += w.Keyword * float64(hits) / float64(len(card.MatchingKeywords))
		maxScore += w.Keyword
	}

	// Name tokens: the dominant signal. Short tokens are noise and ignored.
	if tokens := nameTokens(card.Name); len(tokens) > 0 {
		hits := 0
		for _, tok := range tokens {
			if strings.Contains(normalizedTitle, tok) {
				hits++
			}
		}
		score += w.Name * float64(hits) / float64(len(tokens))
		maxScore += w.Name
	}

	// Card number: "025/189" exact beats a bare "025/" prefix
	if card.FullNumber != "" {
		if strings.Contains(normalizedTitle, strings.ToLower(card.FullNumber)) {
			score += w.Number
		} else if card.CardNumber != "" && strings.Contains(normalizedTitle, strings.ToLower(card.CardNumber)+"/") {
			score += w.Number * m.config.PartialNumberCredit
		}
		maxScore += w.Number
	}

	// Set identification: code literal or any normalized set-name variant
	if card.SetCode != "" || card.SetName != "" {
		if containsAny(normalizedTitle, setVariants(card)) {
			score += w.Set
		}
		maxScore += w.Set
	}

	if maxScore == 0 {
		return 0
	}

	confidence := score / maxScore

	// Competitor-graded listings are strongly suppressed, not zeroed:
	// a title mentioning both TAG and PSA can still clear a high base score.
	if containsAny(normalizedTitle, competingGraders) {
		confidence *= m.config.GradingPenalty
	}

	return confidence
}

// nameTokens splits a card name into lowercase tokens longer than two
// characters.
func nameTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// setVariants returns the normalized forms of a card's set identity that
// may appear in listing titles. "&" is spelled out since sellers write
// "Scarlet and Violet" as often as "Scarlet & Violet".
func setVariants(card *catalog.CanonicalCard) []string {
	variants := make([]string, 0, 4)

	if card.SetCode != "" {
		variants = append(variants, strings.ToLower(card.SetCode))
	}

	name := strings.ToLower(card.SetName)
	if name == "" {
		return variants
	}
	variants = append(variants, name)
	variants = append(variants, strings.ReplaceAll(name, " ", ""))
	variants = append(variants, stripNonAlnum(name))

	if strings.Contains(name, "&") {
		variants = append(variants, strings.ReplaceAll(name, "&", "and"))
	}

	return variants
}

// stripNonAlnum removes every character that is not a letter or digit
func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// containsAny reports whether the title contains any of the needles
func containsAny(title string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(title, n) {
			return true
		}
	}
	return false
}

// matchedKeywords returns the card keywords that literally appear in the
// normalized title, for surfacing alongside the match.
func matchedKeywords(normalizedTitle string, card *catalog.CanonicalCard) []string {
	matched := []string{}
	for _, kw := range card.MatchingKeywords {
		if strings.Contains(normalizedTitle, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}
