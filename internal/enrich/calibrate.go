package enrich

import (
	"math"

	"github.com/meridian-research/newswatch/internal/classify"
	"github.com/meridian-research/newswatch/internal/contracts"
)

// lowCapThresholdM is the market capitalization, in millions, below which
// remote move estimates are calibrated against a deterministic floor.
const lowCapThresholdM = 100.0

// calibrateEstimate raises (never lowers) remote p50/p90 estimates for
// low-capitalization subjects toward a deterministic floor computed from
// catalyst keyword hits and the materiality ratio. Remote services
// systematically underestimate how far thin small-cap books move on real
// catalysts.
func calibrateEstimate(est contracts.MoveEstimate, item contracts.ClassifiedItem) contracts.MoveEstimate {
	capM := item.MarketCapM
	if capM <= 0 || capM >= lowCapThresholdM {
		return est
	}

	text := item.Item.Text()
	hits := classify.CountLowCapCatalystHits(text)
	amountM := classify.ExtractDollarMillions(text)
	ratio := classify.MaterialityRatio(amountM, capM)

	floorP50 := 2.0 + 1.5*float64(hits) + 20.0*math.Min(ratio, 0.5)
	floorP90 := 2.0 * floorP50

	est.P50 = math.Max(est.P50, floorP50)
	est.P90 = math.Max(est.P90, floorP90)
	if est.P90 < est.P50 {
		est.P90 = est.P50
	}

	return est
}
