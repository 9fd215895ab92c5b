package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridian-research/newswatch/internal/contracts"
)

// reSymbolRef matches explicit exchange-qualified ticker references like
// "(NASDAQ: ABCD)" or "(NYSE American: XY.Z)".
var reSymbolRef = regexp.MustCompile(`(?i)\((?:NASDAQ|NYSE(?:\s+American)?|AMEX|OTCQB|OTCQX|OTC|CSE|TSXV?)\s*:\s*([A-Za-z][A-Za-z0-9.\-]{0,9})\)`)

// Normalize turns one raw feed entry into an immutable pipeline item:
// HTML stripped, whitespace collapsed, symbols uppercased and deduplicated,
// and a stable content-derived ID independent of the alert ledger.
func Normalize(e Entry) contracts.RawItem {
	title := collapseWhitespace(stripHTML(e.Title))
	summary := collapseWhitespace(stripHTML(e.Description))

	published := e.Published
	if published.IsZero() {
		published = time.Now().UTC()
	}

	return contracts.RawItem{
		ID:          entryID(e),
		URL:         strings.TrimSpace(e.Link),
		Title:       title,
		Summary:     summary,
		Source:      sourceName(e),
		PublishedAt: published,
		Symbols:     ExtractSymbols(title + " " + summary),
	}
}

// ExtractSymbols pulls exchange-qualified tickers from text, uppercased,
// in order of first appearance, without duplicates.
func ExtractSymbols(text string) []string {
	matches := reSymbolRef.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	symbols := make([]string, 0, len(matches))
	for _, m := range matches {
		symbol := strings.ToUpper(m[1])
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	return symbols
}

// stripHTML reduces an HTML fragment to its text. Malformed markup falls
// back to the raw string.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

var reWhitespace = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// entryID prefers the feed's own GUID; otherwise it derives a stable ID
// from the entry content.
func entryID(e Entry) string {
	if guid := strings.TrimSpace(e.GUID); guid != "" {
		return guid
	}
	sum := sha256.Sum256([]byte(e.Title + "|" + e.Link))
	return hex.EncodeToString(sum[:16])
}

// sourceName prefers the feed-declared source, falling back to the link
// host.
func sourceName(e Entry) string {
	if src := strings.TrimSpace(e.Source); src != "" {
		return src
	}
	if u, err := url.Parse(e.Link); err == nil && u.Host != "" {
		return strings.TrimPrefix(u.Host, "www.")
	}
	return "unknown"
}
