package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Absolute dollar tiers, in millions.
const (
	// MaterialAmountM is the floor for an amount to count as material.
	MaterialAmountM = 1.0
	// MajorAmountM is the floor for an amount to count as major.
	MajorAmountM = 7.5
)

// suffixedAmountRe captures figures like "$25 million", "US$1.4bn",
// "$7.5mm", "$3B". Group 1 is the number, group 2 the scale suffix.
var suffixedAmountRe = regexp.MustCompile(`(?i)(?:US\s?)?\$\s?([0-9][0-9,]*(?:\.[0-9]+)?)\s*(billion|million|bn|mm|m\b|b\b)`)

// rawAmountRe captures bare dollar figures with six to twelve digits, e.g.
// "$2,500,000" or "$1500000".
var rawAmountRe = regexp.MustCompile(`(?i)(?:US\s?)?\$\s?([0-9][0-9,]{5,15})(?:\.[0-9]+)?\b`)

// ExtractDollarMillions scans free text for monetary magnitudes and returns
// the largest one found, in millions. Returns 0 when no figure is present.
func ExtractDollarMillions(text string) float64 {
	best := 0.0

	for _, m := range suffixedAmountRe.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(m[2])) {
		case "billion", "bn", "b":
			value *= 1000
		case "million", "mm", "m":
			// already millions
		}

		if value > best {
			best = value
		}
	}

	for _, m := range rawAmountRe.FindAllStringSubmatch(text, -1) {
		digits := strings.ReplaceAll(m[1], ",", "")
		if len(digits) < 6 || len(digits) > 12 {
			continue
		}
		value, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			continue
		}
		value /= 1_000_000
		if value > best {
			best = value
		}
	}

	return best
}

// MaterialityRatio divides a mentioned amount by the subject's known market
// capitalization, both in millions. Returns 0 when either side is unknown
// or implausible.
func MaterialityRatio(amountM, marketCapM float64) float64 {
	if amountM <= 0 || marketCapM <= 0 {
		return 0
	}
	return amountM / marketCapM
}

// Ratio tiers used by matchers and the scorer.
const (
	RatioTierNotable     = 0.05
	RatioTierSignificant = 0.10
	RatioTierMajor       = 0.25
	RatioTierTransform   = 0.50
)

// ratioWeightBoost converts a materiality ratio into additional matcher
// weight at fixed tiers.
func ratioWeightBoost(ratio float64) float64 {
	switch {
	case ratio >= RatioTierTransform:
		return 2.0
	case ratio >= RatioTierMajor:
		return 1.5
	case ratio >= RatioTierSignificant:
		return 1.0
	case ratio >= RatioTierNotable:
		return 0.5
	default:
		return 0
	}
}
