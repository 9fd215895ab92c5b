package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-research/newswatch/internal/ledger"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// historyRetention is how long dispatched alerts stay queryable. The
// idempotency ledger itself is never pruned.
const historyRetention = 90 * 24 * time.Hour

// MaintenanceJob prunes old alert history rows.
type MaintenanceJob struct {
	repo   *ledger.Repository
	logger *logger.Logger
}

// NewMaintenanceJob creates a new maintenance job.
func NewMaintenanceJob(repo *ledger.Repository, log *logger.Logger) *MaintenanceJob {
	return &MaintenanceJob{repo: repo, logger: log}
}

// Name returns the job name.
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Schedule runs nightly at 03:30.
func (j *MaintenanceJob) Schedule() string {
	return "0 30 3 * * *"
}

// Run prunes alert history beyond the retention window.
func (j *MaintenanceJob) Run(ctx context.Context) error {
	pruned, err := j.repo.PruneHistory(ctx, historyRetention)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	j.logger.WithField("pruned", pruned).Info("Alert history pruned")
	return nil
}
