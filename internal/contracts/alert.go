package contracts

import "time"

// Alert is the payload handed to the alert sink. Rendering is owned by the
// sink, not the core.
type Alert struct {
	Title     string   `json:"title"`
	URL       string   `json:"url,omitempty"`
	Symbol    string   `json:"symbol"`
	Source    string   `json:"source"`
	Category  Category `json:"category"`
	Score     float64  `json:"score"`
	Decision  Decision `json:"decision"`
	Narrative string   `json:"narrative,omitempty"`

	EstimateP50 float64 `json:"estimate_p50"`
	EstimateP90 float64 `json:"estimate_p90"`

	Hash    string    `json:"hash"`
	CycleID string    `json:"cycle_id"`
	SentAt  time.Time `json:"sent_at"`
}
