package contracts

import (
	"context"
	"time"
)

// LedgerRecord is the durable proof that an item was processed. Append-only;
// records are never mutated or deleted.
type LedgerRecord struct {
	Hash      string    `json:"hash"`
	Category  Category  `json:"category"`
	Score     float64   `json:"score"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Ledger is the idempotency ledger: a durable content-addressed store that
// guarantees each distinct (title, url, source) triple yields at most one
// alert.
type Ledger interface {
	// Seen reports whether the hash was already recorded. Read-only probe;
	// concurrency control belongs to SaveIfAbsent.
	Seen(ctx context.Context, hash string) (bool, error)

	// SaveIfAbsent atomically inserts the record unless the hash already
	// exists. Returns true when this call inserted the record, false when
	// it was already present. Inserting an existing hash is never an error.
	SaveIfAbsent(ctx context.Context, rec LedgerRecord) (bool, error)
}

// AlertHistory records dispatched alerts for the status API.
type AlertHistory interface {
	Record(ctx context.Context, alert Alert) error
	Recent(ctx context.Context, limit int) ([]Alert, error)
}

// Enricher sends a classified item across the trust boundary and returns a
// sanitized, locally re-gated result. Implementations must degrade to a
// conservative PASS result on failure rather than returning an error that
// aborts the worker.
type Enricher interface {
	Enrich(ctx context.Context, item ClassifiedItem) (EnrichmentResult, error)
}

// AlertSink renders and delivers the final notification.
type AlertSink interface {
	Send(ctx context.Context, alert Alert) error
}

// ItemSource produces normalized items for one polling cycle.
type ItemSource interface {
	Fetch(ctx context.Context) ([]RawItem, error)
}
