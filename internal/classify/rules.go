package classify

import (
	"regexp"

	"github.com/meridian-research/newswatch/internal/contracts"
)

// matchContext carries everything a predicate may look at. Built fresh per
// classification call; rules never share mutable state.
type matchContext struct {
	text    string // original text
	lower   string // lowercased text
	onWire  bool
	amountM float64
	ratio   float64
	capM    float64
}

// rule binds one boolean predicate to a category and weight. Rules are
// declarative data evaluated by the engine in registration order; several
// rules may fire on the same text and all contribute.
type rule struct {
	name     string
	category contracts.Category
	weight   float64

	// requiresWire suppresses the rule entirely when provenance is
	// unconfirmed. offWireWeight, when > 0, instead fires the rule at a
	// reduced weight off-wire.
	requiresWire  bool
	offWireWeight float64

	// ratioBoost adds tiered extra weight from the materiality ratio.
	ratioBoost bool

	match func(m *matchContext) bool
}

// suppression is a high-precedence pattern that short-circuits
// classification to OTHER before any positive matcher runs.
type suppression struct {
	name    string
	pattern *regexp.Regexp

	// unless vetoes the suppression when it also matches, e.g. "award"
	// language accompanied by contract language.
	unless *regexp.Regexp

	// residualWeight is the OTHER weight returned on suppression; almost
	// always 0.
	residualWeight float64
}

var (
	reRetraction = regexp.MustCompile(`(?i)\b(retracts?|retracted|retraction)\b|corrects and replaces|correction to (a|the|its) (press release|announcement)|issued in error|false (and|or) misleading|fraudulent(ly issued)? press release|not authorized by the company`)

	reSecurityIncident = regexp.MustCompile(`(?i)(cyber ?security|ransomware|data breach|unauthorized (access|activity)).{0,50}(incident|investigation|update)|update (on|regarding) .{0,40}(cyber ?security|ransomware|security) incident`)

	reAwardOnly    = regexp.MustCompile(`(?i)(wins?|receives?|honou?red with|named (a |as )?(winner|finalist)|recognized (as|with|by)).{0,60}\b(award|prize|recognition|honou?r)\b|best places to work|named (one of )?the (top|best|fastest.growing)`)
	reContractWord = regexp.MustCompile(`(?i)\b(contract|purchase order|order|procurement|task order)\b`)

	reTickerChange = regexp.MustCompile(`(?i)name change|changes (its )?(corporate )?name|ticker symbol change|(will|to) (begin|commence) trading under (the )?(new )?(ticker|symbol)|rebrands? (as|to)`)

	reProxyAdmin = regexp.MustCompile(`(?i)\b(ISS|Institutional Shareholder Services|Glass Lewis|proxy advisor[sy]?)\b|recommends? (stock|share)holders vote|(annual|special) meeting of (stock|share)holders|results of (its )?(annual|special) meeting`)
	reBindingMA  = regexp.MustCompile(`(?i)definitive (merger )?agreement|agreement and plan of merger|to be acquired|tender offer|per share in cash`)

	reLawFirm = regexp.MustCompile(`(?i)class action|shareholder rights law firm|lead plaintiff|investors? who (purchased|acquired|suffered)|law (firm|offices?).{0,60}(investigat|remind|announc|alert)|securities (fraud|class action) (investigation|lawsuit)|deadline (alert|reminder)`)

	reAnalystNote = regexp.MustCompile(`(?i)initiates? coverage|price target|\b(buy|sell|hold|outperform|underperform|overweight|underweight|neutral) rating\b|(upgrade[sd]?|downgrade[sd]?) (to|from|shares)|reiterates? (a )?(buy|sell|hold)`)

	reDilutive          = regexp.MustCompile(`(?i)registered direct offering|at-the-market (offering|program|facility)|public offering of (common stock|shares|units|securities)|pricing of .{0,50}offering|private placement|securities purchase agreement|\bwarrants?\b|equity line of credit`)
	rePositiveQualifier = regexp.MustCompile(`(?i)at a premium|above[- ]market|premium to (the )?(closing|market|last)|strategic investment|oversubscribed|no warrants|institutional investor`)
)

// suppressions are evaluated first, in order. The first match wins.
var suppressions = []suppression{
	{name: "retraction", pattern: reRetraction},
	{name: "security-incident", pattern: reSecurityIncident},
	{name: "award-only", pattern: reAwardOnly, unless: reContractWord},
	{name: "ticker-change", pattern: reTickerChange},
	{name: "proxy-admin-vote", pattern: reProxyAdmin, unless: reBindingMA},
	{name: "law-firm", pattern: reLawFirm},
	{name: "analyst-note", pattern: reAnalystNote},
	{name: "plain-dilutive", pattern: reDilutive, unless: rePositiveQualifier, residualWeight: 0.25},
}

var (
	reDefinitiveDeal = regexp.MustCompile(`(?i)definitive (merger )?agreement|agreement and plan of merger|(to be|will be) acquired|agree[sd]? to (acquire|be acquired)|enters? into .{0,40}merger agreement|per share in cash|all[- ]cash (transaction|offer|deal)`)
	reTenderOffer    = regexp.MustCompile(`(?i)tender offer|exchange offer for`)
	reStrategicRev   = regexp.MustCompile(`(?i)strategic alternatives|strategic review|exploring a (potential )?sale|received (an )?unsolicited (proposal|offer)|non-binding (proposal|indication|letter of intent)`)

	reFDAApproval  = regexp.MustCompile(`(?i)fda approv|approved by the (u\.?s\.? )?fda|receives? fda approval|fda (grants?|has granted)|marketing (approval|authorization) from the fda|nda approval|bla approval`)
	reRegClearance = regexp.MustCompile(`(?i)510\(k\) clearance|ce mark|emergency use authorization|ema approv|european commission approv|health canada approv|regulatory (approval|clearance|authorization)`)
	reBreakthrough = regexp.MustCompile(`(?i)breakthrough (therapy|device) designation`)
	reFastTrack    = regexp.MustCompile(`(?i)fast track designation|orphan drug designation|priority review|rare pediatric disease designation`)

	reTrialSuccess = regexp.MustCompile(`(?i)(met|meets|achiev(ed|es)) (its |the )?primary endpoint|statistically significant (improvement|benefit|reduction|difference)|positive (topline|top-line|interim) (results|data)|positive results from (its |the )?phase`)
	reTrialFailure = regexp.MustCompile(`(?i)(did not|failed to|does not) (meet|achieve) (its |the )?primary endpoint|discontinu(es|ed|ing) (the |its )?(phase|clinical|development program)|clinical hold`)

	reContractAward = regexp.MustCompile(`(?i)(awarded|wins?|won|receives?|secures?|signs?).{0,70}\b(contract|purchase order|order|supply agreement|task order)\b`)
	reGovParty      = regexp.MustCompile(`(?i)department of (defense|energy|homeland security|veterans affairs)|u\.?s\.? (army|navy|air force|government)|\b(dod|darpa|nasa|pentagon|gsa)\b|government contract`)

	reResourceFind = regexp.MustCompile(`(?i)(high[- ]grade|bonanza[- ]grade).{0,40}(intercepts?|intervals?|grades?|mineralization)|drill(ing)? (results|intersects?)|discover(y|ies|ed|s) of .{0,40}(gold|silver|lithium|copper|nickel|uranium|rare earth|oil|gas)|maiden (mineral )?resource|\b[0-9.]+ ?g/t\b`)
	rePermit       = regexp.MustCompile(`(?i)(receives?|granted|secures?|obtains?).{0,50}(permit|licen[cs]e to (operate|mine|drill|export))|environmental (approval|permit)|mining (concession|lease) (granted|approved)`)
	reProduction   = regexp.MustCompile(`(?i)(commences?|begins?|starts?|achieves?|reaches?) (commercial |initial )?production|first (gold|silver|lithium|oil) (pour|production|shipment)|production milestone`)

	reEarningsBeat = regexp.MustCompile(`(?i)(revenue|sales|earnings|eps|net income).{0,40}(beat|exceed(s|ed)?|surpass(es|ed)?|ahead of)|record (quarterly|annual|full[- ]year) (revenue|sales|earnings|net income)|(doubl|tripl)(es|ed|ing) .{0,30}(revenue|sales|earnings)`)
	reRevenueGrow  = regexp.MustCompile(`(?i)record revenue|record sales|revenue (grew|increased|up|rose) .{0,10}[0-9]{2,}\s?%`)
	reGuidanceUp   = regexp.MustCompile(`(?i)rais(es|ed|ing) (full[- ]year |annual |fiscal |its )?(revenue |earnings |profit )?(guidance|outlook|forecast)|guidance raised|increas(es|ed) (its )?(full[- ]year )?(guidance|outlook)`)

	rePartnership = regexp.MustCompile(`(?i)strategic (partnership|collaboration|alliance)|partners? with|teams? up with|joint venture|collaboration agreement|master (services|supply) agreement`)
	reLicensing   = regexp.MustCompile(`(?i)licens(e|ing) agreement|exclusive (global |worldwide )?licens(e|ing)|upfront payment of|milestone payments? (of|up to|totaling)`)

	reDebtwork = regexp.MustCompile(`(?i)(eliminat|retir|reduc)(es|ed|ing).{0,40}\bdebt\b|debt (restructuring|refinancing|elimination)|exchang(es|ed) .{0,40}notes|extinguish(es|ed|ment)`)
	reBuyback  = regexp.MustCompile(`(?i)(share|stock) (repurchase|buyback) (program|plan|authorization)|authoriz(es|ed).{0,40}(repurchase|buyback)|expands? (its )?(share )?(repurchase|buyback)`)
	reDividend = regexp.MustCompile(`(?i)special (cash )?dividend|(initiat|declar)(es|ed).{0,30}(quarterly |cash )?dividend|increas(es|ed) (its )?(quarterly |annual )?dividend`)

	reUplisting = regexp.MustCompile(`(?i)uplist(s|ed|ing)?|approved for listing on (the )?(nasdaq|nyse)|(will|to) (begin|commence) trading on (the )?(nasdaq|nyse)`)
	reIndexAdd  = regexp.MustCompile(`(?i)(added to|inclusion in|to join|set to join|joins?) the .{0,30}(russell|s&p|msci|nasdaq[- ]100)`)
)

// rules is the ordered positive matcher table. Earlier registration wins
// weight ties.
var rules = []rule{
	{
		name:          "definitive-acquisition",
		category:      contracts.CategoryAcquisitionBuyout,
		weight:        4.0,
		offWireWeight: 2.0,
		ratioBoost:    true,
		match:         func(m *matchContext) bool { return reDefinitiveDeal.MatchString(m.text) },
	},
	{
		name:     "tender-offer",
		category: contracts.CategoryTenderOffer,
		weight:   3.5,
		match:    func(m *matchContext) bool { return reTenderOffer.MatchString(m.text) },
	},
	{
		name:     "strategic-review",
		category: contracts.CategoryStrategicReview,
		weight:   2.0,
		match:    func(m *matchContext) bool { return reStrategicRev.MatchString(m.text) },
	},
	{
		name:          "fda-approval",
		category:      contracts.CategoryFDAApproval,
		weight:        4.5,
		offWireWeight: 2.5,
		match:         func(m *matchContext) bool { return reFDAApproval.MatchString(m.text) },
	},
	{
		name:     "regulatory-clearance",
		category: contracts.CategoryRegulatoryClearance,
		weight:   3.5,
		match:    func(m *matchContext) bool { return reRegClearance.MatchString(m.text) },
	},
	{
		name:     "breakthrough-designation",
		category: contracts.CategoryBreakthroughDesig,
		weight:   3.0,
		match:    func(m *matchContext) bool { return reBreakthrough.MatchString(m.text) },
	},
	{
		name:     "fast-track",
		category: contracts.CategoryFastTrack,
		weight:   2.5,
		match:    func(m *matchContext) bool { return reFastTrack.MatchString(m.text) },
	},
	{
		name:     "trial-success",
		category: contracts.CategoryTrialSuccess,
		weight:   4.0,
		match:    func(m *matchContext) bool { return reTrialSuccess.MatchString(m.text) },
	},
	{
		name:     "trial-failure",
		category: contracts.CategoryTrialFailure,
		weight:   3.5,
		match:    func(m *matchContext) bool { return reTrialFailure.MatchString(m.text) },
	},
	{
		name:       "material-contract",
		category:   contracts.CategoryMajorContract,
		weight:     2.0,
		ratioBoost: true,
		match: func(m *matchContext) bool {
			return reContractAward.MatchString(m.text) && m.amountM >= MaterialAmountM
		},
	},
	{
		name:     "major-contract-amount",
		category: contracts.CategoryMajorContract,
		weight:   1.5,
		match: func(m *matchContext) bool {
			return reContractAward.MatchString(m.text) && m.amountM >= MajorAmountM
		},
	},
	{
		name:       "government-contract",
		category:   contracts.CategoryGovernmentContract,
		weight:     2.5,
		ratioBoost: true,
		match: func(m *matchContext) bool {
			return reContractAward.MatchString(m.text) && reGovParty.MatchString(m.text)
		},
	},
	{
		name:          "resource-discovery",
		category:      contracts.CategoryResourceDiscovery,
		weight:        3.0,
		offWireWeight: 1.5,
		match:         func(m *matchContext) bool { return reResourceFind.MatchString(m.text) },
	},
	{
		name:     "permit-approval",
		category: contracts.CategoryPermitApproval,
		weight:   2.5,
		match:    func(m *matchContext) bool { return rePermit.MatchString(m.text) },
	},
	{
		name:     "production-milestone",
		category: contracts.CategoryProductionMilestone,
		weight:   2.0,
		match:    func(m *matchContext) bool { return reProduction.MatchString(m.text) },
	},
	{
		name:     "earnings-blowout",
		category: contracts.CategoryEarningsBlowout,
		weight:   2.5,
		match:    func(m *matchContext) bool { return reEarningsBeat.MatchString(m.text) },
	},
	{
		name:     "guidance-raise",
		category: contracts.CategoryGuidanceRaise,
		weight:   2.5,
		match:    func(m *matchContext) bool { return reGuidanceUp.MatchString(m.text) },
	},
	{
		name:     "revenue-record",
		category: contracts.CategoryRevenueRecord,
		weight:   2.0,
		match:    func(m *matchContext) bool { return reRevenueGrow.MatchString(m.text) },
	},
	{
		name:          "strategic-partnership",
		category:      contracts.CategoryStrategicPartnership,
		weight:        2.0,
		offWireWeight: 0.75,
		match:         func(m *matchContext) bool { return rePartnership.MatchString(m.text) },
	},
	{
		name:     "licensing-deal",
		category: contracts.CategoryLicensingDeal,
		weight:   2.5,
		match:    func(m *matchContext) bool { return reLicensing.MatchString(m.text) },
	},
	{
		name:     "qualified-financing",
		category: contracts.CategoryDilutiveFinancing,
		weight:   1.5,
		match: func(m *matchContext) bool {
			return reDilutive.MatchString(m.text) && rePositiveQualifier.MatchString(m.text)
		},
	},
	{
		name:     "debt-restructuring",
		category: contracts.CategoryDebtRestructuring,
		weight:   2.0,
		match:    func(m *matchContext) bool { return reDebtwork.MatchString(m.text) },
	},
	{
		name:       "share-buyback",
		category:   contracts.CategoryShareBuyback,
		weight:     2.0,
		ratioBoost: true,
		match:      func(m *matchContext) bool { return reBuyback.MatchString(m.text) },
	},
	{
		name:     "special-dividend",
		category: contracts.CategorySpecialDividend,
		weight:   2.0,
		match:    func(m *matchContext) bool { return reDividend.MatchString(m.text) },
	},
	{
		name:         "uplisting",
		category:     contracts.CategoryUplisting,
		weight:       2.5,
		requiresWire: true,
		match:        func(m *matchContext) bool { return reUplisting.MatchString(m.text) },
	},
	{
		name:     "index-inclusion",
		category: contracts.CategoryIndexInclusion,
		weight:   2.0,
		match:    func(m *matchContext) bool { return reIndexAdd.MatchString(m.text) },
	},
}

// synergyPair adds a fixed bonus to the dominant category when two
// thematically related categories both accumulate weight in one pass.
type synergyPair struct {
	a, b  contracts.Category
	bonus float64
}

var synergyPairs = []synergyPair{
	{contracts.CategoryTrialSuccess, contracts.CategoryFDAApproval, 1.0},
	{contracts.CategoryTrialSuccess, contracts.CategoryRegulatoryClearance, 1.0},
	{contracts.CategoryAcquisitionBuyout, contracts.CategoryTenderOffer, 1.0},
	{contracts.CategoryResourceDiscovery, contracts.CategoryPermitApproval, 1.0},
	{contracts.CategoryEarningsBlowout, contracts.CategoryGuidanceRaise, 0.75},
}

// strongCatalystFloor is the per-category minimum aggregate weight below
// which classification falls back to OTHER, even if some matcher fired.
var strongCatalystFloor = map[contracts.Category]float64{
	contracts.CategoryMajorContract:        2.0,
	contracts.CategoryStrategicPartnership: 1.0,
	contracts.CategoryDilutiveFinancing:    1.0,
	contracts.CategoryProductionMilestone:  1.0,
}

// defaultCatalystFloor applies to categories without an override.
const defaultCatalystFloor = 0.75
