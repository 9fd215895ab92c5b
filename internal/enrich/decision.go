package enrich

import "github.com/meridian-research/newswatch/internal/contracts"

// yesTotalFloor is the minimum scorecard total for a full YES.
const yesTotalFloor = 0.65

// decide computes the final eligibility verdict from the locally recomputed
// gates and the sanitized scorecard. The remote's own verdict, whatever it
// claims, never reaches this function.
func decide(localGates contracts.LegitimacyGates, card contracts.ImpactScorecard, confidence string) contracts.Decision {
	if !localGates.AllPass() {
		return contracts.DecisionPass
	}

	if confidence == "high" && card.Total >= yesTotalFloor {
		return contracts.DecisionYes
	}

	return contracts.DecisionSpeculative
}
