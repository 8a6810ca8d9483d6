package catalog

// CanonicalCard is a reference card record from the catalog store.
// Cards are immutable for the duration of a matching run; a reload
// replaces the whole snapshot rather than mutating cards in place.
type CanonicalCard struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	HP               int      `json:"hp,omitempty"`
	Type             []string `json:"type,omitempty"`
	Artist           string   `json:"artist,omitempty"`
	Rarity           string   `json:"rarity,omitempty"`
	SetName          string   `json:"setName"`
	SetCode          string   `json:"setCode"`
	CardNumber       string   `json:"cardNumber"`
	FullNumber       string   `json:"fullNumber"`
	ReleaseDate      string   `json:"releaseDate,omitempty"`
	TotalCards       int      `json:"totalCards,omitempty"`
	MatchingKeywords []string `json:"matchingKeywords"`
	ImageURL         string   `json:"imageUrl,omitempty"`
}

// SetRecord describes a card release set.
type SetRecord struct {
	Name        string `json:"name"`
	SetCode     string `json:"setCode"`
	Series      string `json:"series,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	TotalCards  int    `json:"totalCards,omitempty"`
	Description string `json:"description,omitempty"`
}

// SetGroup is a set together with its cards, for per-set browsing.
type SetGroup struct {
	Info  SetRecord       `json:"setInfo"`
	Cards []CanonicalCard `json:"cards"`
}

// Snapshot is an immutable view of the loaded catalog.
// Matching runs hold a snapshot reference; reloads build a fresh
// snapshot and swap it atomically so in-flight matches stay consistent.
type Snapshot struct {
	Cards []CanonicalCard
	Sets  map[string]SetGroup
}

// EmptySnapshot returns a snapshot with no cards.
// Used when the whole catalog store is unreadable: matching degrades
// to "everything unmatched" instead of failing.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Cards: []CanonicalCard{},
		Sets:  map[string]SetGroup{},
	}
}
