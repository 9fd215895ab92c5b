// Package classify maps free-text corporate news to one event category from
// a closed set, plus a raw rule weight. Evaluation is layered: hard
// suppression patterns short-circuit first, then an ordered table of positive
// matchers accumulates weight per category, modulated by provenance and
// extracted dollar magnitudes.
//
// Classification is total and pure: any string input, including the empty
// string, yields a result, and identical (text, provenance, market cap)
// always yields an identical result.
package classify

import (
	"strings"

	"github.com/meridian-research/newswatch/internal/contracts"
)

// Result is one classification verdict.
type Result struct {
	Category contracts.Category
	Weight   float64
	OnWire   bool

	// Suppressed names the suppression pattern that short-circuited the
	// call, if any.
	Suppressed string

	// AmountM is the largest dollar magnitude found in the text, in
	// millions; Ratio is AmountM divided by the known market cap.
	AmountM float64
	Ratio   float64
}

// Classify evaluates the rule set against a text blob and source URL.
// marketCapM is the subject's known market capitalization in millions; pass
// 0 when unknown.
func Classify(text, sourceURL string, marketCapM float64) Result {
	onWire := IsOnWire(sourceURL, text)
	amountM := ExtractDollarMillions(text)
	if marketCapM < 0 {
		marketCapM = 0
	}

	result := Result{
		Category: contracts.CategoryOther,
		OnWire:   onWire,
		AmountM:  amountM,
		Ratio:    MaterialityRatio(amountM, marketCapM),
	}

	if strings.TrimSpace(text) == "" {
		return result
	}

	// Hard suppression short-circuits everything below.
	for _, s := range suppressions {
		if !s.pattern.MatchString(text) {
			continue
		}
		if s.unless != nil && s.unless.MatchString(text) {
			continue
		}
		result.Suppressed = s.name
		result.Weight = s.residualWeight
		return result
	}

	m := &matchContext{
		text:    text,
		lower:   strings.ToLower(text),
		onWire:  onWire,
		amountM: amountM,
		ratio:   result.Ratio,
		capM:    marketCapM,
	}

	// Weight accumulation is call-scoped; the engine holds no mutable
	// state between calls.
	weights := make(map[contracts.Category]float64, 4)
	firstFired := make(map[contracts.Category]int, 4)

	for i, r := range rules {
		if r.requiresWire && !onWire {
			continue
		}
		if !r.match(m) {
			continue
		}

		w := r.weight
		if !onWire && r.offWireWeight > 0 {
			w = r.offWireWeight
		}
		if r.ratioBoost {
			w += ratioWeightBoost(m.ratio)
		}

		weights[r.category] += w
		if _, ok := firstFired[r.category]; !ok {
			firstFired[r.category] = i
		}
	}

	if len(weights) == 0 {
		return result
	}

	applySynergy(weights)

	winner, total := pickWinner(weights, firstFired)

	floor, ok := strongCatalystFloor[winner]
	if !ok {
		floor = defaultCatalystFloor
	}
	if total <= 0 || total < floor {
		return result
	}

	result.Category = winner
	result.Weight = total
	return result
}

// applySynergy adds a fixed bonus to the dominant side of each thematically
// related pair that both accumulated weight.
func applySynergy(weights map[contracts.Category]float64) {
	for _, p := range synergyPairs {
		wa, oka := weights[p.a]
		wb, okb := weights[p.b]
		if !oka || !okb {
			continue
		}
		if wa >= wb {
			weights[p.a] = wa + p.bonus
		} else {
			weights[p.b] = wb + p.bonus
		}
	}
}

// pickWinner selects the category with the highest total weight. Ties break
// by matcher registration order: the category whose first matcher registered
// earliest wins.
func pickWinner(weights map[contracts.Category]float64, firstFired map[contracts.Category]int) (contracts.Category, float64) {
	winner := contracts.CategoryOther
	best := 0.0
	bestOrder := len(rules)

	for cat, w := range weights {
		order := firstFired[cat]
		if w > best || (w == best && order < bestOrder) {
			winner = cat
			best = w
			bestOrder = order
		}
	}

	return winner, best
}
