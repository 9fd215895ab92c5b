package enrich

import (
	"regexp"
	"strings"

	"github.com/meridian-research/newswatch/internal/classify"
	"github.com/meridian-research/newswatch/internal/contracts"
)

// reRegulatorRef matches in-text references to a regulator or listing venue,
// used as one corroboration signal.
var reRegulatorRef = regexp.MustCompile(`(?i)\b(fda|sec|ema|nasdaq|nyse|finra|cftc|securities and exchange commission)\b`)

// RecomputeGates derives all six legitimacy gates locally from the same
// deterministic text predicates used by classification. The remote service's
// claimed gates are never trusted for the decision.
func RecomputeGates(item contracts.ClassifiedItem) contracts.LegitimacyGates {
	text := item.Item.Text()

	return contracts.LegitimacyGates{
		OnWire:             classify.IsOnWire(item.Item.URL, text),
		NamedCounterparty:  classify.HasNamedCounterparty(text),
		QuantitativeDetail: classify.HasQuantitativeDetail(text),
		Corroborated:       isCorroborated(item.Item.URL, text),
		SubjectVerified:    subjectVerified(item.Item, text),
		NoRedFlags:         !classify.HasRedFlags(text),
	}
}

// isCorroborated requires two independent provenance signals (allow-listed
// host AND in-text wire attribution) or an explicit regulator/venue
// reference. A deliberately conservative proxy: a story fabricated on a
// single channel fails it.
func isCorroborated(sourceURL, text string) bool {
	if classify.HostOnWire(sourceURL) && classify.HasWireToken(text) {
		return true
	}
	return reRegulatorRef.MatchString(text)
}

// subjectVerified checks that the claimed subject actually appears in the
// text: the primary ticker symbol as a standalone token.
func subjectVerified(item contracts.RawItem, text string) bool {
	symbol := item.PrimarySymbol()
	if symbol == "" {
		return false
	}

	upper := strings.ToUpper(text)
	idx := 0
	for {
		i := strings.Index(upper[idx:], symbol)
		if i < 0 {
			return false
		}
		i += idx

		beforeOK := i == 0 || !isWordChar(upper[i-1])
		after := i + len(symbol)
		afterOK := after >= len(upper) || !isWordChar(upper[after])
		if beforeOK && afterOK {
			return true
		}
		idx = i + 1
	}
}

func isWordChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
