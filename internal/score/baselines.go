package score

import "github.com/meridian-research/newswatch/internal/contracts"

// baselines maps each category to its starting score. Strong regulatory and
// trial catalysts sit near 0.7; routine corporate noise starts near 0.2.
var baselines = map[contracts.Category]float64{
	contracts.CategoryFDAApproval:          0.70,
	contracts.CategoryTrialSuccess:         0.68,
	contracts.CategoryAcquisitionBuyout:    0.64,
	contracts.CategoryTenderOffer:          0.62,
	contracts.CategoryRegulatoryClearance:  0.60,
	contracts.CategoryResourceDiscovery:    0.60,
	contracts.CategoryBreakthroughDesig:    0.58,
	contracts.CategoryGovernmentContract:   0.58,
	contracts.CategoryTrialFailure:         0.55,
	contracts.CategoryMajorContract:        0.55,
	contracts.CategoryEarningsBlowout:      0.55,
	contracts.CategoryLicensingDeal:        0.52,
	contracts.CategoryGuidanceRaise:        0.52,
	contracts.CategoryFastTrack:            0.50,
	contracts.CategoryPermitApproval:       0.50,
	contracts.CategorySpecialDividend:      0.50,
	contracts.CategoryStrategicPartnership: 0.50,
	contracts.CategoryUplisting:            0.48,
	contracts.CategoryRevenueRecord:        0.48,
	contracts.CategoryProductionMilestone:  0.48,
	contracts.CategoryStrategicReview:      0.45,
	contracts.CategoryShareBuyback:         0.45,
	contracts.CategoryIndexInclusion:       0.45,
	contracts.CategoryDebtRestructuring:    0.42,
	contracts.CategoryDilutiveFinancing:    0.30,
	contracts.CategoryOther:                0.20,
}

// Baseline returns the starting score for a category. Unknown categories
// fall back to the OTHER baseline.
func Baseline(cat contracts.Category) float64 {
	if b, ok := baselines[cat]; ok {
		return b
	}
	return baselines[contracts.CategoryOther]
}

// Noise ceilings: specific low-value text patterns clamp the score to a
// fixed ceiling regardless of baseline or later boosts.
const (
	capAnalystNote    = 0.16
	capShelfFinancing = 0.15
	capProxyAdmin     = 0.12
	capLawFirm        = 0.12
	capAwardOnly      = 0.10
)

// offWireCeiling bounds provenance-sensitive categories when the item is
// not on-wire and no top-tier counterparty exception applies.
const offWireCeiling = 0.55

// provenanceSensitive marks categories whose score is modulated by wire
// provenance.
var provenanceSensitive = map[contracts.Category]bool{
	contracts.CategoryFDAApproval:        true,
	contracts.CategoryTrialSuccess:       true,
	contracts.CategoryAcquisitionBuyout:  true,
	contracts.CategoryTenderOffer:        true,
	contracts.CategoryResourceDiscovery:  true,
	contracts.CategoryMajorContract:      true,
	contracts.CategoryGovernmentContract: true,
	contracts.CategoryUplisting:          true,
}
