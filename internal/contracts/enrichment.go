package contracts

// Decision is the final eligibility verdict for an enriched item. It is
// always recomputed locally from the legitimacy gates and scorecard, never
// taken verbatim from the remote service.
type Decision string

const (
	DecisionYes         Decision = "YES"
	DecisionSpeculative Decision = "SPECULATIVE"
	DecisionPass        Decision = "PASS"
)

// MoveEstimate is the remote service's estimated move distribution, in
// percent. Sanitization enforces P90 >= P50 >= 0.
type MoveEstimate struct {
	P50 float64 `json:"p50_move_pct"`
	P90 float64 `json:"p90_move_pct"`

	// Confidence is the remote's qualitative confidence: low, medium, high.
	// Unknown values sanitize to "low".
	Confidence string `json:"confidence"`
}

// LegitimacyGates are the six boolean checks that decide whether an
// enrichment estimate may be acted upon. The remote's claims are kept for
// diagnostics only; the decision uses locally recomputed gates.
type LegitimacyGates struct {
	OnWire             bool `json:"on_wire"`
	NamedCounterparty  bool `json:"named_counterparty"`
	QuantitativeDetail bool `json:"quantitative_detail"`
	Corroborated       bool `json:"corroborated"`
	SubjectVerified    bool `json:"subject_verified"`
	NoRedFlags         bool `json:"no_red_flags"`
}

// AllPass reports whether every gate is open.
func (g LegitimacyGates) AllPass() bool {
	return g.OnWire && g.NamedCounterparty && g.QuantitativeDetail &&
		g.Corroborated && g.SubjectVerified && g.NoRedFlags
}

// ImpactScorecard holds six bounded [0,1] sub-scores plus the weighted
// total. Ephemeral, produced per enrichment call and never persisted.
type ImpactScorecard struct {
	WireScore          float64 `json:"wire_score"`
	CounterpartyScore  float64 `json:"counterparty_score"`
	QuantScore         float64 `json:"quant_score"`
	CorroborationScore float64 `json:"corroboration_score"`
	SubjectScore       float64 `json:"subject_score"`
	CleanlinessScore   float64 `json:"cleanliness_score"`
	Total              float64 `json:"total"`
}

// EnrichmentResult is the sanitized, locally re-gated outcome of one
// enrichment call.
type EnrichmentResult struct {
	Estimate    MoveEstimate    `json:"estimate"`
	RemoteGates LegitimacyGates `json:"remote_gates"`
	LocalGates  LegitimacyGates `json:"local_gates"`
	Scorecard   ImpactScorecard `json:"scorecard"`
	Decision    Decision        `json:"decision"`
	Narrative   string          `json:"narrative,omitempty"`

	// Degraded marks a conservative null result produced after a transport
	// or payload failure.
	Degraded bool `json:"degraded,omitempty"`
}
