package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-research/newswatch/internal/contracts"
)

func lowCapItem(text string, capM float64) contracts.ClassifiedItem {
	return contracts.ClassifiedItem{
		Item: contracts.RawItem{
			Title:   text,
			Source:  "prnewswire",
			Symbols: []string{"ACME"},
		},
		Klass:      contracts.CategoryProductionMilestone,
		MarketCapM: capM,
	}
}

func TestCalibrate_RaisesLowEstimateForLowCap(t *testing.T) {
	item := lowCapItem("Acme secures financing and permit, begins construction toward production", 40)
	est := contracts.MoveEstimate{P50: 1, P90: 2, Confidence: "medium"}

	out := calibrateEstimate(est, item)

	assert.Greater(t, out.P50, est.P50)
	assert.Greater(t, out.P90, est.P90)
	assert.GreaterOrEqual(t, out.P90, out.P50)
	assert.Equal(t, "medium", out.Confidence)
}

func TestCalibrate_NeverLowers(t *testing.T) {
	item := lowCapItem("Acme begins production", 40)
	est := contracts.MoveEstimate{P50: 80, P90: 200, Confidence: "high"}

	out := calibrateEstimate(est, item)

	assert.Equal(t, est.P50, out.P50)
	assert.Equal(t, est.P90, out.P90)
}

func TestCalibrate_SkipsLargeAndUnknownCaps(t *testing.T) {
	est := contracts.MoveEstimate{P50: 1, P90: 2, Confidence: "low"}

	large := calibrateEstimate(est, lowCapItem("financing production permit", 500))
	assert.Equal(t, est, large)

	unknown := calibrateEstimate(est, lowCapItem("financing production permit", 0))
	assert.Equal(t, est, unknown)
}

func TestDecide_GatePolicy(t *testing.T) {
	allPass := contracts.LegitimacyGates{
		OnWire:             true,
		NamedCounterparty:  true,
		QuantitativeDetail: true,
		Corroborated:       true,
		SubjectVerified:    true,
		NoRedFlags:         true,
	}
	oneFail := allPass
	oneFail.Corroborated = false

	strong := contracts.ImpactScorecard{Total: 0.8}
	weak := contracts.ImpactScorecard{Total: 0.4}

	assert.Equal(t, contracts.DecisionPass, decide(oneFail, strong, "high"))
	assert.Equal(t, contracts.DecisionYes, decide(allPass, strong, "high"))
	assert.Equal(t, contracts.DecisionSpeculative, decide(allPass, weak, "high"))
	assert.Equal(t, contracts.DecisionSpeculative, decide(allPass, strong, "medium"))
	assert.Equal(t, contracts.DecisionSpeculative, decide(allPass, strong, "low"))
}

func TestRecomputeGates_FromText(t *testing.T) {
	item := contracts.ClassifiedItem{
		Item: contracts.RawItem{
			Title:   "NEW YORK /PRNewswire/ -- ACME receives FDA approval for a $25 million program with Pfizer Inc",
			URL:     "https://www.prnewswire.com/news/acme",
			Source:  "prnewswire",
			Symbols: []string{"ACME"},
		},
		Klass:  contracts.CategoryFDAApproval,
		OnWire: true,
	}

	gates := RecomputeGates(item)

	assert.True(t, gates.OnWire)
	assert.True(t, gates.NamedCounterparty)
	assert.True(t, gates.QuantitativeDetail)
	assert.True(t, gates.Corroborated)
	assert.True(t, gates.SubjectVerified)
	assert.True(t, gates.NoRedFlags)
	assert.True(t, gates.AllPass())
}

func TestRecomputeGates_FailClosed(t *testing.T) {
	item := contracts.ClassifiedItem{
		Item: contracts.RawItem{
			Title:   "Unverified rumor about a merger",
			URL:     "https://rumors.example.com/x",
			Symbols: []string{"ACME"},
		},
	}

	gates := RecomputeGates(item)

	assert.False(t, gates.OnWire)
	assert.False(t, gates.Corroborated)
	assert.False(t, gates.SubjectVerified)
	assert.False(t, gates.AllPass())
}
