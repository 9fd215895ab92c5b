package contracts

// Category is one event class from the closed category set.
type Category string

// The closed category set. Classification falls back to CategoryOther for
// anything that clears no matcher or fails its strong-catalyst floor.
const (
	CategoryAcquisitionBuyout    Category = "ACQUISITION_BUYOUT"
	CategoryTenderOffer          Category = "TENDER_OFFER"
	CategoryStrategicReview      Category = "STRATEGIC_REVIEW"
	CategoryStrategicPartnership Category = "STRATEGIC_PARTNERSHIP"
	CategoryLicensingDeal        Category = "LICENSING_DEAL"
	CategoryFDAApproval          Category = "FDA_APPROVAL"
	CategoryRegulatoryClearance  Category = "REGULATORY_CLEARANCE"
	CategoryBreakthroughDesig    Category = "BREAKTHROUGH_DESIGNATION"
	CategoryFastTrack            Category = "FAST_TRACK"
	CategoryTrialSuccess         Category = "TRIAL_SUCCESS"
	CategoryTrialFailure         Category = "TRIAL_FAILURE"
	CategoryMajorContract        Category = "MAJOR_CONTRACT"
	CategoryGovernmentContract   Category = "GOVERNMENT_CONTRACT"
	CategoryResourceDiscovery    Category = "RESOURCE_DISCOVERY"
	CategoryProductionMilestone  Category = "PRODUCTION_MILESTONE"
	CategoryPermitApproval       Category = "PERMIT_APPROVAL"
	CategoryEarningsBlowout      Category = "EARNINGS_BLOWOUT"
	CategoryGuidanceRaise        Category = "GUIDANCE_RAISE"
	CategoryRevenueRecord        Category = "REVENUE_RECORD"
	CategoryDilutiveFinancing    Category = "DILUTIVE_FINANCING"
	CategoryDebtRestructuring    Category = "DEBT_RESTRUCTURING"
	CategoryShareBuyback         Category = "SHARE_BUYBACK"
	CategorySpecialDividend      Category = "SPECIAL_DIVIDEND"
	CategoryUplisting            Category = "UPLISTING"
	CategoryIndexInclusion       Category = "INDEX_INCLUSION"
	CategoryOther                Category = "OTHER"
)

// AllCategories lists every member of the closed set, OTHER last.
var AllCategories = []Category{
	CategoryAcquisitionBuyout,
	CategoryTenderOffer,
	CategoryStrategicReview,
	CategoryStrategicPartnership,
	CategoryLicensingDeal,
	CategoryFDAApproval,
	CategoryRegulatoryClearance,
	CategoryBreakthroughDesig,
	CategoryFastTrack,
	CategoryTrialSuccess,
	CategoryTrialFailure,
	CategoryMajorContract,
	CategoryGovernmentContract,
	CategoryResourceDiscovery,
	CategoryProductionMilestone,
	CategoryPermitApproval,
	CategoryEarningsBlowout,
	CategoryGuidanceRaise,
	CategoryRevenueRecord,
	CategoryDilutiveFinancing,
	CategoryDebtRestructuring,
	CategoryShareBuyback,
	CategorySpecialDividend,
	CategoryUplisting,
	CategoryIndexInclusion,
	CategoryOther,
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
