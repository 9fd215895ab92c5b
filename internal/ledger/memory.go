package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meridian-research/newswatch/internal/contracts"
)

// Memory is an in-process ledger with the same atomicity contract as the
// Postgres repository. Used for tests and dry-run operation; not durable.
type Memory struct {
	mu      sync.Mutex
	records map[string]contracts.LedgerRecord
	history []contracts.Alert
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]contracts.LedgerRecord),
	}
}

// Seen reports whether the hash was already recorded.
func (m *Memory) Seen(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.records[hash]
	return ok, nil
}

// SaveIfAbsent inserts the record unless the hash already exists. The mutex
// makes the check-and-insert atomic, matching the SQL ON CONFLICT behavior.
func (m *Memory) SaveIfAbsent(_ context.Context, rec contracts.LedgerRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[rec.Hash]; ok {
		return false, nil
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.records[rec.Hash] = rec
	return true, nil
}

// Record appends a dispatched alert to the in-memory history.
func (m *Memory) Record(_ context.Context, alert contracts.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append(m.history, alert)
	return nil
}

// Recent returns the most recently dispatched alerts, newest first.
func (m *Memory) Recent(_ context.Context, limit int) ([]contracts.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]contracts.Alert, len(m.history))
	copy(out, m.history)
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of ledger records. Test helper.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
