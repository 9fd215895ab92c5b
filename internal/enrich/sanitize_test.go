package enrich

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEstimate_Clamps(t *testing.T) {
	raw := rawResponse{P50Move: -20, P90Move: 9000, Confidence: "HIGH"}

	est := sanitizeEstimate(raw)

	assert.Equal(t, 0.0, est.P50)
	assert.Equal(t, maxMovePct, est.P90)
	assert.Equal(t, "high", est.Confidence)
}

func TestSanitizeEstimate_OrdersQuantiles(t *testing.T) {
	est := sanitizeEstimate(rawResponse{P50Move: 40, P90Move: 5})

	assert.Equal(t, 40.0, est.P50)
	assert.Equal(t, 40.0, est.P90)
}

func TestSanitizeEstimate_UnknownConfidenceDefaultsLow(t *testing.T) {
	assert.Equal(t, "low", sanitizeEstimate(rawResponse{Confidence: "certain"}).Confidence)
	assert.Equal(t, "low", sanitizeEstimate(rawResponse{}).Confidence)
}

func TestSanitizeEstimate_NaNGuard(t *testing.T) {
	est := sanitizeEstimate(rawResponse{P50Move: math.NaN(), P90Move: math.NaN()})

	assert.Equal(t, 0.0, est.P50)
	assert.Equal(t, 0.0, est.P90)
}

func TestSanitizeScorecard_RecomputesTotal(t *testing.T) {
	raw := rawResponse{}
	raw.Scorecard.Wire = 1.0
	raw.Scorecard.Counterparty = 2.5 // out of range, clamps to 1
	raw.Scorecard.Quantitative = 0.5
	raw.Scorecard.Corroboration = -1 // clamps to 0
	raw.Scorecard.Subject = 1.0
	raw.Scorecard.Cleanliness = 1.0

	card := sanitizeScorecard(raw)

	assert.Equal(t, 1.0, card.CounterpartyScore)
	assert.Equal(t, 0.0, card.CorroborationScore)

	want := 1.0*weightWire + 1.0*weightCounterparty + 0.5*weightQuantitative +
		0.0*weightCorroboration + 1.0*weightSubject + 1.0*weightCleanliness
	assert.InDelta(t, want, card.Total, 1e-9)
	assert.LessOrEqual(t, card.Total, 1.0)
	assert.GreaterOrEqual(t, card.Total, 0.0)
}

func TestScorecardWeightsSumToOne(t *testing.T) {
	sum := weightWire + weightCounterparty + weightQuantitative +
		weightCorroboration + weightSubject + weightCleanliness
	assert.InDelta(t, 1.0, sum, 1e-9)
}
