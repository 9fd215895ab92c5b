// Package orchestrator runs one polling cycle: it fans a batch of normalized
// items out to a bounded pool of per-item workers and aggregates their
// outcomes. Worker failures are isolated; one bad item never takes down the
// cycle.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// Outcome is the terminal state of one item's trip through the pipeline.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSkippedNoSymbol
	OutcomeSkippedFiltered
	OutcomeSkippedDuplicate
	OutcomeSkippedPass
	OutcomeAlerted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlerted:
		return "alerted"
	case OutcomeSkippedNoSymbol:
		return "skipped_no_symbol"
	case OutcomeSkippedFiltered:
		return "skipped_filtered"
	case OutcomeSkippedDuplicate:
		return "skipped_duplicate"
	case OutcomeSkippedPass:
		return "skipped_pass"
	default:
		return "failed"
	}
}

// Summary aggregates one cycle's outcomes.
type Summary struct {
	CycleID    string
	Total      int
	Alerted    int
	NoSymbol   int
	Filtered   int
	Duplicates int
	Passed     int
	Failed     int
}

func (s *Summary) count(o Outcome) {
	switch o {
	case OutcomeAlerted:
		s.Alerted++
	case OutcomeSkippedNoSymbol:
		s.NoSymbol++
	case OutcomeSkippedFiltered:
		s.Filtered++
	case OutcomeSkippedDuplicate:
		s.Duplicates++
	case OutcomeSkippedPass:
		s.Passed++
	default:
		s.Failed++
	}
}

// workerFunc processes exactly one item.
type workerFunc func(ctx context.Context, item contracts.RawItem) (Outcome, error)

// runBatch invokes worker once per item with at most maxConcurrent workers
// in flight. A panicking worker counts as failed and releases its slot; the
// remaining items still run. Items not yet dispatched when ctx is cancelled
// count as failed.
func runBatch(ctx context.Context, log *logger.Logger, items []contracts.RawItem, worker workerFunc, maxConcurrent int) Summary {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	summary := Summary{Total: len(items)}
	sem := make(chan struct{}, maxConcurrent)
	outcomes := make(chan Outcome, len(items))

	var wg sync.WaitGroup
	for _, item := range items {
		select {
		case <-ctx.Done():
			outcomes <- OutcomeFailed
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(it contracts.RawItem) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes <- runOne(ctx, log, it, worker)
		}(item)
	}

	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		summary.count(o)
	}
	return summary
}

// runOne shields the pool from a single worker's panic or error.
func runOne(ctx context.Context, log *logger.Logger, item contracts.RawItem, worker workerFunc) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("title", item.Title).
				WithError(fmt.Errorf("panic: %v", r)).
				Error("Worker panicked")
			outcome = OutcomeFailed
		}
	}()

	outcome, err := worker(ctx, item)
	if err != nil {
		log.WithError(err).WithField("title", item.Title).Error("Worker failed")
		return OutcomeFailed
	}
	return outcome
}
