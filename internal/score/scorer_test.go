package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-research/newswatch/internal/contracts"
)

func TestScore_AlwaysBounded(t *testing.T) {
	texts := []string{
		"",
		"Acme Corp receives FDA approval, record $2 billion contract, doubles revenue, transformative landmark milestone",
		"plain uneventful text",
	}

	for _, cat := range contracts.AllCategories {
		for _, text := range texts {
			for _, onWire := range []bool{true, false} {
				s := Score(Input{Category: cat, Text: text, OnWire: onWire, MarketCapM: 10, SingleSubject: true})
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 1.0)
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	in := Input{
		Category:      contracts.CategoryFDAApproval,
		Text:          "Acme Corp receives FDA approval for a $120 million product line",
		OnWire:        true,
		MarketCapM:    80,
		SingleSubject: true,
	}

	first := Score(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Score(in))
	}
}

func TestScore_RetractionKillSwitch(t *testing.T) {
	s := Score(Input{
		Category: contracts.CategoryFDAApproval,
		Text:     "Acme Corp retracts its announcement of FDA approval, release issued in error",
		OnWire:   true,
	})

	assert.Zero(t, s)
}

func TestScore_DefinitivePricedDealBeatsBaseline(t *testing.T) {
	s := Score(Input{
		Category:      contracts.CategoryAcquisitionBuyout,
		Text:          "Acme Corp announces definitive merger agreement to be acquired for $5.00 per share in cash",
		OnWire:        true,
		SingleSubject: true,
	})

	assert.Greater(t, s, Baseline(contracts.CategoryAcquisitionBuyout))
}

func TestScore_AnalystNoteCapped(t *testing.T) {
	s := Score(Input{
		Category:      contracts.CategoryOther,
		Text:          "Maxim Group initiates coverage on Acme Corp with a Buy rating and $10 price target",
		OnWire:        false,
		SingleSubject: true,
	})

	assert.LessOrEqual(t, s, 0.16)
}

func TestScore_NoiseCapHoldsAgainstBoosts(t *testing.T) {
	// Superlatives, big figures and a tiny cap must not lift junk over
	// its ceiling.
	s := Score(Input{
		Category:      contracts.CategoryOther,
		Text:          "Analyst reiterates Buy rating with record $500 million price target, transformative doubling ahead",
		OnWire:        true,
		MarketCapM:    20,
		SingleSubject: true,
	})

	assert.LessOrEqual(t, s, 0.16)
}

func TestScore_OffWireCeiling(t *testing.T) {
	text := "Acme Corp receives FDA approval for its lead device"

	onWire := Score(Input{Category: contracts.CategoryFDAApproval, Text: text, OnWire: true, MarketCapM: 30, SingleSubject: true})
	offWire := Score(Input{Category: contracts.CategoryFDAApproval, Text: text, OnWire: false, MarketCapM: 30, SingleSubject: true})

	assert.Greater(t, onWire, offWire)
	assert.LessOrEqual(t, offWire, offWireCeiling+0.12)
}

func TestScore_TopTierCounterpartyLiftsOffWire(t *testing.T) {
	plain := Score(Input{
		Category:   contracts.CategoryFDAApproval,
		Text:       "Acme Corp receives FDA approval for its lead device",
		MarketCapM: 30,
	})
	vouched := Score(Input{
		Category:   contracts.CategoryFDAApproval,
		Text:       "Acme Corp receives FDA approval for its lead device developed with Pfizer",
		MarketCapM: 30,
	})

	assert.Greater(t, vouched, plain)
}

func TestScore_CapTierMonotonic(t *testing.T) {
	text := "Acme Corp receives FDA approval"

	tiny := Score(Input{Category: contracts.CategoryFDAApproval, Text: text, OnWire: true, MarketCapM: 30})
	small := Score(Input{Category: contracts.CategoryFDAApproval, Text: text, OnWire: true, MarketCapM: 150})
	mid := Score(Input{Category: contracts.CategoryFDAApproval, Text: text, OnWire: true, MarketCapM: 600})
	large := Score(Input{Category: contracts.CategoryFDAApproval, Text: text, OnWire: true, MarketCapM: 6000})

	assert.Greater(t, tiny, small)
	assert.Greater(t, small, mid)
	assert.Greater(t, mid, large)
}

func TestBaseline_UnknownFallsBackToOther(t *testing.T) {
	assert.Equal(t, Baseline(contracts.CategoryOther), Baseline(contracts.Category("NO_SUCH")))
}
