// Package variant classifies sale titles into print variants.
package variant

import "strings"

// Variant is a print/finish classification of a card.
type Variant string

const (
	RainbowRare Variant = "Rainbow Rare"
	FullArt     Variant = "Full Art"
	Regular     Variant = "Regular"
)

// Detect classifies a title into exactly one variant. Rules are checked
// in priority order: rainbow/secret beats full/alt art beats regular.
func Detect(title string) Variant {
	normalized := strings.ToLower(title)

	if strings.Contains(normalized, "rainbow") || strings.Contains(normalized, "secret") {
		return RainbowRare
	}
	if strings.Contains(normalized, "full art") || strings.Contains(normalized, "alt art") {
		return FullArt
	}
	return Regular
}

// All returns every variant label, in detection priority order.
func All() []Variant {
	return []Variant{RainbowRare, FullArt, Regular}
}
