package enrich

import (
	"strings"

	"github.com/meridian-research/newswatch/internal/contracts"
)

// rawResponse is the untrusted inbound payload from the remote reasoning
// service. Every field is optional; anything missing, unknown or
// out-of-range sanitizes to a conservative value rather than failing.
type rawResponse struct {
	P50Move    float64 `json:"p50_move_pct"`
	P90Move    float64 `json:"p90_move_pct"`
	Confidence string  `json:"confidence"`
	Narrative  string  `json:"narrative"`

	Gates struct {
		OnWire             bool `json:"on_wire"`
		NamedCounterparty  bool `json:"named_counterparty"`
		QuantitativeDetail bool `json:"quantitative_detail"`
		Corroborated       bool `json:"corroborated"`
		SubjectVerified    bool `json:"subject_verified"`
		RedFlags           bool `json:"red_flags"`
	} `json:"gates"`

	Scorecard struct {
		Wire          float64 `json:"wire"`
		Counterparty  float64 `json:"counterparty"`
		Quantitative  float64 `json:"quantitative"`
		Corroboration float64 `json:"corroboration"`
		Subject       float64 `json:"subject"`
		Cleanliness   float64 `json:"cleanliness"`
	} `json:"scorecard"`
}

// Scorecard component weights; they sum to 1.0 so the total stays in [0,1].
const (
	weightWire          = 0.25
	weightCounterparty  = 0.20
	weightQuantitative  = 0.20
	weightCorroboration = 0.15
	weightSubject       = 0.10
	weightCleanliness   = 0.10
)

// maxMovePct bounds a plausible single-event move estimate.
const maxMovePct = 500.0

// sanitizeEstimate clamps the remote move distribution: percentages bounded
// to [0, maxMovePct] and P90 >= P50 enforced. Unknown confidence defaults
// to "low".
func sanitizeEstimate(raw rawResponse) contracts.MoveEstimate {
	p50 := clampRange(raw.P50Move, 0, maxMovePct)
	p90 := clampRange(raw.P90Move, 0, maxMovePct)
	if p90 < p50 {
		p90 = p50
	}

	confidence := strings.ToLower(strings.TrimSpace(raw.Confidence))
	switch confidence {
	case "low", "medium", "high":
	default:
		confidence = "low"
	}

	return contracts.MoveEstimate{
		P50:        p50,
		P90:        p90,
		Confidence: confidence,
	}
}

// sanitizeScorecard clamps every component to [0,1] and recomputes the
// weighted total locally; the remote's own total, if any, is discarded.
func sanitizeScorecard(raw rawResponse) contracts.ImpactScorecard {
	card := contracts.ImpactScorecard{
		WireScore:          clampRange(raw.Scorecard.Wire, 0, 1),
		CounterpartyScore:  clampRange(raw.Scorecard.Counterparty, 0, 1),
		QuantScore:         clampRange(raw.Scorecard.Quantitative, 0, 1),
		CorroborationScore: clampRange(raw.Scorecard.Corroboration, 0, 1),
		SubjectScore:       clampRange(raw.Scorecard.Subject, 0, 1),
		CleanlinessScore:   clampRange(raw.Scorecard.Cleanliness, 0, 1),
	}

	card.Total = card.WireScore*weightWire +
		card.CounterpartyScore*weightCounterparty +
		card.QuantScore*weightQuantitative +
		card.CorroborationScore*weightCorroboration +
		card.SubjectScore*weightSubject +
		card.CleanlinessScore*weightCleanliness

	return card
}

// remoteGates copies the remote's claimed gates for diagnostics. They never
// feed the decision.
func remoteGates(raw rawResponse) contracts.LegitimacyGates {
	return contracts.LegitimacyGates{
		OnWire:             raw.Gates.OnWire,
		NamedCounterparty:  raw.Gates.NamedCounterparty,
		QuantitativeDetail: raw.Gates.QuantitativeDetail,
		Corroborated:       raw.Gates.Corroborated,
		SubjectVerified:    raw.Gates.SubjectVerified,
		NoRedFlags:         !raw.Gates.RedFlags,
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
