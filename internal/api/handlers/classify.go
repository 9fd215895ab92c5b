package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/meridian-research/newswatch/internal/classify"
	"github.com/meridian-research/newswatch/internal/score"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// ClassifyHandler runs the deterministic classifier and scorer on an ad-hoc
// item. Useful for tuning rules without touching the live pipeline; nothing
// here writes to the ledger or dispatches alerts.
type ClassifyHandler struct {
	logger *logger.Logger
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(log *logger.Logger) *ClassifyHandler {
	return &ClassifyHandler{logger: log}
}

// ClassifyRequest is one ad-hoc item to evaluate.
type ClassifyRequest struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	URL        string   `json:"url"`
	Symbols    []string `json:"symbols"`
	MarketCapM float64  `json:"market_cap_m"`
}

// ClassifyResponse is the engine's verdict. Suppressed carries the name of
// the suppression rule that fired, empty when none did.
type ClassifyResponse struct {
	Category   string  `json:"category"`
	Weight     float64 `json:"weight"`
	Score      float64 `json:"score"`
	OnWire     bool    `json:"on_wire"`
	Suppressed string  `json:"suppressed,omitempty"`
	AmountM    float64 `json:"amount_m"`
	Ratio      float64 `json:"ratio"`
}

// Classify evaluates one item.
// POST /api/v1/classify
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	text := req.Title
	if req.Summary != "" {
		text += ". " + req.Summary
	}

	verdict := classify.Classify(text, req.URL, req.MarketCapM)
	sc := score.Score(score.Input{
		Category:      verdict.Category,
		Text:          text,
		OnWire:        verdict.OnWire,
		MarketCapM:    req.MarketCapM,
		SingleSubject: len(req.Symbols) == 1,
	})

	respondJSON(w, http.StatusOK, ClassifyResponse{
		Category:   string(verdict.Category),
		Weight:     verdict.Weight,
		Score:      sc,
		OnWire:     verdict.OnWire,
		Suppressed: verdict.Suppressed,
		AmountM:    verdict.AmountM,
		Ratio:      verdict.Ratio,
	})
}
