package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-research/newswatch/internal/contracts"
)

// Repository is the Postgres-backed ledger. Records are append-only: rows
// are only ever inserted, never updated or deleted.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new ledger repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the ledger tables if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS alert_ledger (
			hash       TEXT PRIMARY KEY,
			category   TEXT NOT NULL,
			score      DOUBLE PRECISION NOT NULL,
			title      TEXT NOT NULL,
			source     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS alert_history (
			id           BIGSERIAL PRIMARY KEY,
			hash         TEXT NOT NULL REFERENCES alert_ledger(hash),
			symbol       TEXT NOT NULL,
			title        TEXT NOT NULL,
			url          TEXT NOT NULL DEFAULT '',
			source       TEXT NOT NULL,
			category     TEXT NOT NULL,
			score        DOUBLE PRECISION NOT NULL,
			decision     TEXT NOT NULL,
			narrative    TEXT NOT NULL DEFAULT '',
			estimate_p50 DOUBLE PRECISION NOT NULL DEFAULT 0,
			estimate_p90 DOUBLE PRECISION NOT NULL DEFAULT 0,
			cycle_id     TEXT NOT NULL DEFAULT '',
			sent_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_alert_history_sent_at
			ON alert_history (sent_at DESC);
	`

	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}
	return nil
}

// Seen reports whether the hash was already recorded. Read-only probe; the
// orchestrator's concurrency guard is SaveIfAbsent, not Seen-then-save.
func (r *Repository) Seen(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM alert_ledger WHERE hash = $1)`, hash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ledger seen: %w", err)
	}
	return exists, nil
}

// SaveIfAbsent atomically inserts the record unless the hash already exists.
// ON CONFLICT DO NOTHING makes the check-and-insert a single atomic
// operation at the storage layer: of two workers racing on the same hash,
// exactly one observes inserted=true.
func (r *Repository) SaveIfAbsent(ctx context.Context, rec contracts.LedgerRecord) (bool, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO alert_ledger (hash, category, score, title, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (hash) DO NOTHING
	`, rec.Hash, string(rec.Category), rec.Score, rec.Title, rec.Source, createdAt)
	if err != nil {
		return false, fmt.Errorf("ledger save: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Record appends a dispatched alert to the history table.
func (r *Repository) Record(ctx context.Context, alert contracts.Alert) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO alert_history
			(hash, symbol, title, url, source, category, score, decision,
			 narrative, estimate_p50, estimate_p90, cycle_id, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, alert.Hash, alert.Symbol, alert.Title, alert.URL, alert.Source,
		string(alert.Category), alert.Score, string(alert.Decision),
		alert.Narrative, alert.EstimateP50, alert.EstimateP90,
		alert.CycleID, alert.SentAt)
	if err != nil {
		return fmt.Errorf("record alert: %w", err)
	}
	return nil
}

// Recent returns the most recently dispatched alerts, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]contracts.Alert, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT hash, symbol, title, url, source, category, score, decision,
		       narrative, estimate_p50, estimate_p90, cycle_id, sent_at
		FROM alert_history
		ORDER BY sent_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	defer rows.Close()

	var alerts []contracts.Alert
	for rows.Next() {
		var a contracts.Alert
		var category, decision string
		if err := rows.Scan(&a.Hash, &a.Symbol, &a.Title, &a.URL, &a.Source,
			&category, &a.Score, &decision, &a.Narrative,
			&a.EstimateP50, &a.EstimateP90, &a.CycleID, &a.SentAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Category = contracts.Category(category)
		a.Decision = contracts.Decision(decision)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// PruneHistory deletes alert-history rows older than the retention window.
// The ledger table itself is never pruned.
func (r *Repository) PruneHistory(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM alert_history WHERE sent_at < $1`,
		time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("prune alert history: %w", err)
	}
	return tag.RowsAffected(), nil
}
