package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/internal/ledger"
	"github.com/meridian-research/newswatch/internal/orchestrator"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/logger"
)

type passEnricher struct{}

func (passEnricher) Enrich(_ context.Context, _ contracts.ClassifiedItem) (contracts.EnrichmentResult, error) {
	return contracts.EnrichmentResult{Decision: contracts.DecisionPass}, nil
}

func testPipeline() *orchestrator.Pipeline {
	cfg := config.PipelineConfig{AlertThreshold: 0.55, MaxConcurrent: 2}
	mem := ledger.NewMemory()
	return orchestrator.NewPipeline(cfg, mem, passEnricher{}, nil, mem, nil, logger.NewNop())
}

// gatedSource blocks its first Fetch until released, holding a cycle in
// flight so overlap behavior can be observed.
type gatedSource struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *gatedSource) Fetch(_ context.Context) ([]contracts.RawItem, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
		<-s.release
	}
	return nil, nil
}

type failingSource struct{}

func (failingSource) Fetch(_ context.Context) ([]contracts.RawItem, error) {
	return nil, errors.New("feed unreachable")
}

func TestPollJob_SkipsTickWhileCycleInFlight(t *testing.T) {
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	job := NewPollJob(src, testPipeline(), time.Minute, logger.NewNop())

	done := make(chan error, 1)
	go func() { done <- job.Run(context.Background()) }()

	<-src.started

	// A tick that fires mid-cycle returns immediately without touching
	// the source again.
	require.NoError(t, job.Run(context.Background()))
	assert.EqualValues(t, 1, src.calls.Load())

	close(src.release)
	require.NoError(t, <-done)

	// Once the cycle finishes the next tick runs normally.
	require.NoError(t, job.Run(context.Background()))
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestPollJob_PropagatesFetchError(t *testing.T) {
	job := NewPollJob(failingSource{}, testPipeline(), time.Minute, logger.NewNop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed unreachable")
}

func TestPollJob_ScheduleFollowsInterval(t *testing.T) {
	job := NewPollJob(failingSource{}, testPipeline(), 90*time.Second, logger.NewNop())

	assert.Equal(t, "poll", job.Name())
	assert.Equal(t, "@every 1m30s", job.Schedule())
}
