package classify

import "regexp"

// Deterministic text predicates shared by the scorer and the enrichment
// trust gates. Keeping them here means local gate recomputation uses exactly
// the same logic as classification.

var (
	reNamedCounterparty = regexp.MustCompile(`(?i)\b(with|from|by|for) (the )?[A-Z][A-Za-z&.\-]+( [A-Z][A-Za-z&.\-]+){0,3},? (\(|Inc|Corp|Ltd|LLC|plc|S\.A|N\.V|AG|Co\b)|\b(pfizer|merck|novartis|roche|astrazeneca|johnson & johnson|eli lilly|amazon|google|alphabet|microsoft|apple|nvidia|meta|oracle|ibm|intel|boeing|lockheed martin|raytheon|northrop|general dynamics|exxon|chevron|shell|bp|walmart|target|costco|home depot|department of (defense|energy|homeland security)|u\.?s\.? (army|navy|air force)|\bnasa\b)`)

	reTopTierParty = regexp.MustCompile(`(?i)\b(pfizer|merck|novartis|roche|astrazeneca|johnson & johnson|eli lilly|amazon|google|alphabet|microsoft|apple|nvidia|meta|oracle|ibm|intel|boeing|lockheed martin|raytheon|northrop|general dynamics|exxon|chevron|shell|walmart|costco|department of defense|u\.?s\.? (army|navy|air force)|\bnasa\b)`)

	reQuantDetail = regexp.MustCompile(`(?i)(?:US\s?)?\$\s?[0-9][0-9,.]*|\b[0-9]+(\.[0-9]+)?\s?%|\b[0-9]+(\.[0-9]+)? ?g/t\b|\b[0-9,]+ (shares|units|ounces|tonnes|barrels)\b`)

	reSuperlative = regexp.MustCompile(`(?i)\b(record|largest|biggest|first[- ]ever|unprecedented|historic|landmark|transformative|milestone)\b`)

	reMultiplied = regexp.MustCompile(`(?i)\b(doubl|tripl|quadrupl)(e[sd]?|ing)\b|\bup (more than )?[0-9]{3,}\s?%`)

	reLowCapCatalyst = regexp.MustCompile(`(?i)\b(financing|construction|production|permit|permitting|offtake|feasibility|drill)\b`)
)

// HasNamedCounterparty reports explicit mention of a counterparty entity
// (a capitalized corporate name with a legal suffix, or a known large
// organization).
func HasNamedCounterparty(text string) bool {
	return reNamedCounterparty.MatchString(text)
}

// HasTopTierCounterparty reports a named top-tier counterparty: a megacap
// or major government body whose involvement lends credibility on its own.
func HasTopTierCounterparty(text string) bool {
	return reTopTierParty.MatchString(text)
}

// HasQuantitativeDetail reports the presence of concrete figures: dollar
// amounts, percentages, grades or unit counts.
func HasQuantitativeDetail(text string) bool {
	return reQuantDetail.MatchString(text)
}

// HasRedFlags reports retraction/misinformation or investor-law-firm
// markers, the same patterns that hard-suppress classification.
func HasRedFlags(text string) bool {
	return reRetraction.MatchString(text) || reLawFirm.MatchString(text)
}

// IsRetraction reports only the retraction/misinformation kill-switch
// pattern.
func IsRetraction(text string) bool {
	return reRetraction.MatchString(text)
}

// HasSuperlative reports superlative language.
func HasSuperlative(text string) bool {
	return reSuperlative.MatchString(text)
}

// HasMultipliedFigure reports doubled/tripled style growth language.
func HasMultipliedFigure(text string) bool {
	return reMultiplied.MatchString(text)
}

// CountLowCapCatalystHits counts keyword families associated with outsized
// moves in low-capitalization subjects; used by enrichment calibration.
func CountLowCapCatalystHits(text string) int {
	return len(reLowCapCatalyst.FindAllString(text, -1))
}

// Noise predicates. The scorer uses these to clamp low-value items to fixed
// ceilings; they mirror the suppression patterns exactly.

// IsAnalystNote reports analyst/media-only rating language.
func IsAnalystNote(text string) bool {
	return reAnalystNote.MatchString(text)
}

// IsProxyAdminOnly reports proxy-advisor or administrative-vote-only
// language with no accompanying binding M&A language.
func IsProxyAdminOnly(text string) bool {
	return reProxyAdmin.MatchString(text) && !reBindingMA.MatchString(text)
}

// IsLawFirmBoilerplate reports investor-law-firm boilerplate.
func IsLawFirmBoilerplate(text string) bool {
	return reLawFirm.MatchString(text)
}

// IsAwardOnly reports a pure award/recognition announcement with no
// contract language.
func IsAwardOnly(text string) bool {
	return reAwardOnly.MatchString(text) && !reContractWord.MatchString(text)
}

// IsPlainDilutive reports shelf/at-market financing language without an
// offsetting positive qualifier.
func IsPlainDilutive(text string) bool {
	return reDilutive.MatchString(text) && !rePositiveQualifier.MatchString(text)
}

// Deal-language predicates used by the scorer's category adjustments.

var (
	rePricedPerShare = regexp.MustCompile(`(?i)\$\s?[0-9]+(\.[0-9]+)? per share|per share in cash`)
	reNonBinding     = regexp.MustCompile(`(?i)non-binding|letter of intent|indication of interest|memorandum of understanding`)
	reEndpointMet    = regexp.MustCompile(`(?i)(met|meets|achiev(ed|es)) (its |the )?primary endpoint|statistically significant`)
)

// IsDefinitivePricedDeal reports binding deal language with an explicit
// per-share price.
func IsDefinitivePricedDeal(text string) bool {
	return reDefinitiveDeal.MatchString(text) && rePricedPerShare.MatchString(text)
}

// IsNonBindingDeal reports non-binding/letter-of-intent deal language.
func IsNonBindingDeal(text string) bool {
	return reNonBinding.MatchString(text)
}

// HasEndpointLanguage reports explicit primary-endpoint or statistical
// significance language.
func HasEndpointLanguage(text string) bool {
	return reEndpointMet.MatchString(text)
}
