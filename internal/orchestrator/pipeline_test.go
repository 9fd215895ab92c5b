package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/internal/ledger"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/logger"
)

type stubEnricher struct {
	decision contracts.Decision
}

func (s *stubEnricher) Enrich(_ context.Context, item contracts.ClassifiedItem) (contracts.EnrichmentResult, error) {
	return contracts.EnrichmentResult{
		Decision: s.decision,
		Estimate: contracts.MoveEstimate{P50: 10, P90: 25, Confidence: "high"},
	}, nil
}

type recordingSink struct {
	mu     sync.Mutex
	alerts []contracts.Alert
}

func (s *recordingSink) Send(_ context.Context, alert contracts.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

func newTestPipeline(decision contracts.Decision) (*Pipeline, *ledger.Memory, *recordingSink) {
	cfg := config.PipelineConfig{
		AlertThreshold: 0.55,
		MaxConcurrent:  4,
	}
	mem := ledger.NewMemory()
	sink := &recordingSink{}
	p := NewPipeline(cfg, mem, &stubEnricher{decision: decision}, []contracts.AlertSink{sink}, mem, nil, logger.NewNop())
	return p, mem, sink
}

func strongItem(id string) contracts.RawItem {
	return contracts.RawItem{
		ID:          id,
		URL:         "https://www.prnewswire.com/news/acme-" + id,
		Title:       "Acme Corp receives FDA approval for its lead therapy",
		Source:      "prnewswire",
		PublishedAt: time.Now().UTC(),
		Symbols:     []string{"ACME"},
	}
}

func TestPipeline_AlertsOnStrongItem(t *testing.T) {
	p, mem, sink := newTestPipeline(contracts.DecisionYes)

	summary := p.Run(context.Background(), []contracts.RawItem{strongItem("1")})

	assert.Equal(t, 1, summary.Alerted)
	assert.Equal(t, 1, sink.count())
	assert.Equal(t, 1, mem.Len())

	alert := sink.alerts[0]
	assert.Equal(t, "ACME", alert.Symbol)
	assert.Equal(t, contracts.CategoryFDAApproval, alert.Category)
	assert.Equal(t, contracts.DecisionYes, alert.Decision)
	assert.Equal(t, summary.CycleID, alert.CycleID)
	assert.NotEmpty(t, alert.Hash)
}

func TestPipeline_DuplicateYieldsExactlyOneAlert(t *testing.T) {
	p, mem, sink := newTestPipeline(contracts.DecisionYes)

	// Identical content twice in the same concurrent batch.
	items := []contracts.RawItem{strongItem("1"), strongItem("1")}
	items[1].ID = "other-id" // distinct feed entry, same content triple

	summary := p.Run(context.Background(), items)

	assert.Equal(t, 1, summary.Alerted)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 1, sink.count())
	assert.Equal(t, 1, mem.Len())
}

func TestPipeline_DuplicateAcrossCycles(t *testing.T) {
	p, _, sink := newTestPipeline(contracts.DecisionYes)

	first := p.Run(context.Background(), []contracts.RawItem{strongItem("1")})
	second := p.Run(context.Background(), []contracts.RawItem{strongItem("1")})

	assert.Equal(t, 1, first.Alerted)
	assert.Equal(t, 0, second.Alerted)
	assert.Equal(t, 1, second.Duplicates)
	assert.Equal(t, 1, sink.count())
}

func TestPipeline_NoSymbolSkipped(t *testing.T) {
	p, mem, sink := newTestPipeline(contracts.DecisionYes)

	item := strongItem("1")
	item.Symbols = nil

	summary := p.Run(context.Background(), []contracts.RawItem{item})

	assert.Equal(t, 1, summary.NoSymbol)
	assert.Zero(t, sink.count())
	assert.Zero(t, mem.Len())
}

func TestPipeline_BelowThresholdFiltered(t *testing.T) {
	p, mem, sink := newTestPipeline(contracts.DecisionYes)

	item := strongItem("1")
	item.Title = "Maxim Group initiates coverage on Acme Corp with a Buy rating"
	item.URL = "https://news.example.com/analyst-note"

	summary := p.Run(context.Background(), []contracts.RawItem{item})

	assert.Equal(t, 1, summary.Filtered)
	assert.Zero(t, sink.count())
	// Filtered items never reach the ledger; a later, stronger version of
	// the story must still be able to alert.
	assert.Zero(t, mem.Len())
}

func TestPipeline_EnrichmentPassSuppressesAlert(t *testing.T) {
	p, mem, sink := newTestPipeline(contracts.DecisionPass)

	summary := p.Run(context.Background(), []contracts.RawItem{strongItem("1")})

	assert.Equal(t, 1, summary.Passed)
	assert.Zero(t, sink.count())
	// The item is still ledgered: it was processed to completion.
	assert.Equal(t, 1, mem.Len())
}

func TestPipeline_CapBounds(t *testing.T) {
	cfg := config.PipelineConfig{
		AlertThreshold: 0.55,
		MaxConcurrent:  2,
		MinMarketCapM:  10,
		MaxMarketCapM:  500,
	}
	mem := ledger.NewMemory()
	sink := &recordingSink{}

	caps := map[string]float64{"TINY": 4, "ACME": 120, "MEGA": 9000}
	lookup := func(_ context.Context, symbol string) float64 { return caps[symbol] }

	p := NewPipeline(cfg, mem, &stubEnricher{decision: contracts.DecisionYes}, []contracts.AlertSink{sink}, mem, lookup, logger.NewNop())

	tiny := strongItem("1")
	tiny.Symbols = []string{"TINY"}
	ok := strongItem("2")
	ok.Symbols = []string{"ACME"}
	mega := strongItem("3")
	mega.Symbols = []string{"MEGA"}

	summary := p.Run(context.Background(), []contracts.RawItem{tiny, ok, mega})

	assert.Equal(t, 1, summary.Alerted)
	assert.Equal(t, 2, summary.Filtered)
	require.Equal(t, 1, sink.count())
	assert.Equal(t, "ACME", sink.alerts[0].Symbol)
}
