// Package ledger implements the idempotency ledger: a durable,
// content-addressed store guaranteeing each distinct (title, url, source)
// triple yields at most one alert, across restarts and across concurrent
// workers in a cycle.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes the deterministic content address of an item. Two items
// producing the same hash are the same logical event.
func Hash(title, url, source string) string {
	normalized := normalize(title) + "|" + normalize(url) + "|" + normalize(source)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// normalize trims and lowercases so cosmetic whitespace or case differences
// do not defeat deduplication.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
