package dto

import "encoding/json"

// MatchRequest is the body for POST /api/match. Sales is kept as raw
// JSON so the handler can distinguish a missing key from an empty
// array and from a non-array value.
type MatchRequest struct {
	Sales json.RawMessage `json:"sales"`
}

// ScrapeRequest is the optional body for POST /api/scrape.
type ScrapeRequest struct {
	Marketplace string `json:"marketplace"`
	MaxItems    int    `json:"maxItems"`
}
