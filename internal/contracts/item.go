package contracts

import "time"

// RawItem is one normalized news item as produced by the feed normalizer.
// Immutable once created; consumed once per polling cycle.
type RawItem struct {
	ID          string    `json:"id"`
	URL         string    `json:"url,omitempty"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`

	// Symbols are uppercase and deduplicated. Items naming more than one
	// subject collapse to the first symbol downstream.
	Symbols []string `json:"symbols"`
}

// Text returns the blob the classification engine and scorer operate on.
func (r RawItem) Text() string {
	if r.Summary == "" {
		return r.Title
	}
	return r.Title + ". " + r.Summary
}

// PrimarySymbol returns the first subject symbol, or "" when the item names
// none.
func (r RawItem) PrimarySymbol() string {
	if len(r.Symbols) == 0 {
		return ""
	}
	return r.Symbols[0]
}

// ClassifiedItem is a RawItem plus the engine's verdict. Immutable after
// classification and scoring.
type ClassifiedItem struct {
	Item RawItem `json:"item"`

	Klass     Category `json:"klass"`
	RawWeight float64  `json:"raw_weight"`
	Score     float64  `json:"score"`
	OnWire    bool     `json:"on_wire"`

	// MarketCapM is the subject's known market capitalization in millions
	// of dollars; 0 means unknown.
	MarketCapM float64 `json:"market_cap_m,omitempty"`
}
