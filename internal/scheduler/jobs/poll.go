// Package jobs contains the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/internal/orchestrator"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// PollJob runs one full polling cycle: fetch feeds, then hand the batch to
// the orchestrator. A mutex guard skips a tick when the previous cycle is
// still running so slow feeds never stack cycles.
type PollJob struct {
	source   contracts.ItemSource
	pipeline *orchestrator.Pipeline
	interval time.Duration
	logger   *logger.Logger

	running sync.Mutex
}

// NewPollJob creates a new polling job.
func NewPollJob(source contracts.ItemSource, pipeline *orchestrator.Pipeline, interval time.Duration, log *logger.Logger) *PollJob {
	return &PollJob{
		source:   source,
		pipeline: pipeline,
		interval: interval,
		logger:   log,
	}
}

// Name returns the job name.
func (j *PollJob) Name() string {
	return "poll"
}

// Schedule returns the polling cadence.
func (j *PollJob) Schedule() string {
	return "@every " + j.interval.String()
}

// Run executes one cycle.
func (j *PollJob) Run(ctx context.Context) error {
	if !j.running.TryLock() {
		j.logger.Warn("Previous cycle still running, skipping tick")
		return nil
	}
	defer j.running.Unlock()

	items, err := j.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	summary := j.pipeline.Run(ctx, items)
	if summary.Failed == summary.Total {
		return fmt.Errorf("all %d items failed", summary.Total)
	}
	return nil
}
