// Package score assigns each classified item a bounded materiality score in
// [0,1]. The scorer is a pure function: identical (category, text,
// provenance, market cap) input always yields an identical score.
package score

import (
	"math"

	"github.com/meridian-research/newswatch/internal/classify"
	"github.com/meridian-research/newswatch/internal/contracts"
)

// Input carries everything the scorer looks at.
type Input struct {
	Category contracts.Category
	Text     string
	OnWire   bool

	// MarketCapM is the known market capitalization in millions; 0 means
	// unknown.
	MarketCapM float64

	// SingleSubject is true when the item names exactly one symbol.
	SingleSubject bool
}

// Score computes the materiality score for one classified item.
func Score(in Input) float64 {
	// Kill-switch: retraction/misinformation forces zero regardless of
	// everything else, evaluated before the baseline.
	if classify.IsRetraction(in.Text) {
		return 0
	}

	s := Baseline(in.Category)

	// Noise caps. Remember the lowest matched ceiling; it also bounds the
	// final result so later boosts cannot lift junk over the cap.
	ceiling := math.Inf(1)
	if classify.IsAnalystNote(in.Text) {
		ceiling = math.Min(ceiling, capAnalystNote)
	}
	if classify.IsPlainDilutive(in.Text) {
		ceiling = math.Min(ceiling, capShelfFinancing)
	}
	if classify.IsProxyAdminOnly(in.Text) {
		ceiling = math.Min(ceiling, capProxyAdmin)
	}
	if classify.IsLawFirmBoilerplate(in.Text) {
		ceiling = math.Min(ceiling, capLawFirm)
	}
	if classify.IsAwardOnly(in.Text) {
		ceiling = math.Min(ceiling, capAwardOnly)
	}
	s = math.Min(s, ceiling)

	s += categoryAdjustment(in)
	s = modulateProvenance(s, in)
	s += ratioBoost(in)
	s += capTierBoost(in.MarketCapM)
	s += textualNudges(in)

	s = math.Min(s, ceiling)
	return clamp01(s)
}

// categoryAdjustment rewards the language that makes a category's verdict
// trustworthy and penalizes its hedged variants.
func categoryAdjustment(in Input) float64 {
	switch in.Category {
	case contracts.CategoryTrialSuccess, contracts.CategoryTrialFailure:
		// Trial results gain weight only with explicit endpoint language.
		if classify.HasEndpointLanguage(in.Text) {
			return 0.06
		}
		return -0.08

	case contracts.CategoryAcquisitionBuyout, contracts.CategoryTenderOffer:
		if classify.IsNonBindingDeal(in.Text) {
			return -0.10
		}
		if classify.IsDefinitivePricedDeal(in.Text) {
			return 0.06
		}
		return 0

	case contracts.CategoryMajorContract, contracts.CategoryGovernmentContract:
		if classify.HasQuantitativeDetail(in.Text) {
			return 0.03
		}
		return -0.05

	default:
		return 0
	}
}

// modulateProvenance adds a small bonus on-wire and caps sensitive
// categories off-wire, unless a named top-tier counterparty vouches for the
// story.
func modulateProvenance(s float64, in Input) float64 {
	if !provenanceSensitive[in.Category] {
		return s
	}

	if in.OnWire {
		return s + 0.02
	}

	if classify.HasTopTierCounterparty(in.Text) {
		return s
	}
	return math.Min(s, offWireCeiling)
}

// ratioBoost adds a graduated, saturating bonus from the materiality ratio.
func ratioBoost(in Input) float64 {
	amountM := classify.ExtractDollarMillions(in.Text)
	ratio := classify.MaterialityRatio(amountM, in.MarketCapM)

	switch {
	case ratio >= classify.RatioTierTransform:
		return 0.12
	case ratio >= classify.RatioTierMajor:
		return 0.09
	case ratio >= classify.RatioTierSignificant:
		return 0.06
	case ratio >= classify.RatioTierNotable:
		return 0.03
	default:
		return 0
	}
}

// capTierBoost rewards smaller known capitalizations via a four-tier
// monotonic step function. Unknown capitalization takes a conservative
// mid-tier bonus.
func capTierBoost(marketCapM float64) float64 {
	if marketCapM <= 0 {
		return 0.03
	}

	switch {
	case marketCapM < 50:
		return 0.08
	case marketCapM < 250:
		return 0.05
	case marketCapM < 1000:
		return 0.03
	default:
		return 0.01
	}
}

// textualNudges adds small fixed bonuses for generic credibility and
// magnitude markers.
func textualNudges(in Input) float64 {
	bonus := 0.0

	if classify.HasSuperlative(in.Text) {
		bonus += 0.02
	}
	if classify.ExtractDollarMillions(in.Text) >= 100 {
		bonus += 0.02
	}
	if classify.HasMultipliedFigure(in.Text) {
		bonus += 0.02
	}
	if in.SingleSubject {
		bonus += 0.01
	}

	return bonus
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
