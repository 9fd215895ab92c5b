package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-research/newswatch/internal/classify"
	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/internal/ledger"
	"github.com/meridian-research/newswatch/internal/score"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// CapLookup resolves a symbol's market capitalization in millions of
// dollars. Returning 0 means unknown; unknown subjects are not filtered.
type CapLookup func(ctx context.Context, symbol string) float64

// Pipeline wires the full per-item path: eligibility, classification,
// scoring, the idempotency ledger, enrichment and alert dispatch.
type Pipeline struct {
	cfg      config.PipelineConfig
	ledger   contracts.Ledger
	enricher contracts.Enricher
	sinks    []contracts.AlertSink
	history  contracts.AlertHistory
	caps     CapLookup
	logger   *logger.Logger
}

// NewPipeline creates a pipeline. history and caps may be nil.
func NewPipeline(cfg config.PipelineConfig, led contracts.Ledger, enr contracts.Enricher, sinks []contracts.AlertSink, history contracts.AlertHistory, caps CapLookup, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		ledger:   led,
		enricher: enr,
		sinks:    sinks,
		history:  history,
		caps:     caps,
		logger:   log.WithField("module", "orchestrator"),
	}
}

// Run executes one polling cycle over the batch with at most
// cfg.MaxConcurrent workers in flight and returns the aggregated summary.
func (p *Pipeline) Run(ctx context.Context, items []contracts.RawItem) Summary {
	cycleID := uuid.NewString()
	log := p.logger.WithField("cycle_id", cycleID)

	start := time.Now()
	summary := runBatch(ctx, log, items, func(ctx context.Context, item contracts.RawItem) (Outcome, error) {
		return p.process(ctx, cycleID, item)
	}, p.cfg.MaxConcurrent)
	summary.CycleID = cycleID

	log.WithFields(map[string]interface{}{
		"total":      summary.Total,
		"alerted":    summary.Alerted,
		"duplicates": summary.Duplicates,
		"filtered":   summary.Filtered,
		"passed":     summary.Passed,
		"failed":     summary.Failed,
		"elapsed":    time.Since(start).Round(time.Millisecond).String(),
	}).Info("Cycle complete")

	return summary
}

// process runs one item end to end. The ledger write happens before any
// external side effect: SaveIfAbsent is the single arbiter of which worker
// owns a given content hash, so two workers holding identical items can
// never both alert.
func (p *Pipeline) process(ctx context.Context, cycleID string, item contracts.RawItem) (Outcome, error) {
	symbol := item.PrimarySymbol()
	if symbol == "" {
		return OutcomeSkippedNoSymbol, nil
	}

	hash := ledger.Hash(item.Title, item.URL, item.Source)

	// Cheap read-only probe; the authoritative check is SaveIfAbsent below.
	if seen, err := p.ledger.Seen(ctx, hash); err != nil {
		return OutcomeFailed, fmt.Errorf("ledger probe: %w", err)
	} else if seen {
		return OutcomeSkippedDuplicate, nil
	}

	var capM float64
	if p.caps != nil {
		capM = p.caps(ctx, symbol)
	}
	if !p.capEligible(capM) {
		return OutcomeSkippedFiltered, nil
	}

	verdict := classify.Classify(item.Text(), item.URL, capM)
	sc := score.Score(score.Input{
		Category:      verdict.Category,
		Text:          item.Text(),
		OnWire:        verdict.OnWire,
		MarketCapM:    capM,
		SingleSubject: len(item.Symbols) == 1,
	})

	if sc < p.cfg.AlertThreshold {
		return OutcomeSkippedFiltered, nil
	}

	inserted, err := p.ledger.SaveIfAbsent(ctx, contracts.LedgerRecord{
		Hash:      hash,
		Category:  verdict.Category,
		Score:     sc,
		Title:     item.Title,
		Source:    item.Source,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("ledger save: %w", err)
	}
	if !inserted {
		return OutcomeSkippedDuplicate, nil
	}

	classified := contracts.ClassifiedItem{
		Item:       item,
		Klass:      verdict.Category,
		RawWeight:  verdict.Weight,
		Score:      sc,
		OnWire:     verdict.OnWire,
		MarketCapM: capM,
	}

	enriched, err := p.enricher.Enrich(ctx, classified)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("enrich: %w", err)
	}
	if enriched.Decision == contracts.DecisionPass {
		return OutcomeSkippedPass, nil
	}

	alert := contracts.Alert{
		Title:       item.Title,
		URL:         item.URL,
		Symbol:      symbol,
		Source:      item.Source,
		Category:    verdict.Category,
		Score:       sc,
		Decision:    enriched.Decision,
		Narrative:   enriched.Narrative,
		EstimateP50: enriched.Estimate.P50,
		EstimateP90: enriched.Estimate.P90,
		Hash:        hash,
		CycleID:     cycleID,
		SentAt:      time.Now().UTC(),
	}

	if err := p.dispatch(ctx, alert); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeAlerted, nil
}

// dispatch fans the alert out to every configured sink and records it. A
// sink failure after the ledger write loses that delivery rather than
// risking a double alert on retry.
func (p *Pipeline) dispatch(ctx context.Context, alert contracts.Alert) error {
	var firstErr error
	for _, sink := range p.sinks {
		if err := sink.Send(ctx, alert); err != nil {
			p.logger.WithError(err).WithField("symbol", alert.Symbol).Error("Alert sink failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("sink: %w", err)
			}
		}
	}

	if p.history != nil {
		if err := p.history.Record(ctx, alert); err != nil {
			p.logger.WithError(err).Warn("Alert history write failed")
		}
	}
	return firstErr
}

// capEligible applies the configured market-cap bounds. Unknown caps (0)
// always pass so cap-feed outages do not silence the pipeline.
func (p *Pipeline) capEligible(capM float64) bool {
	if capM <= 0 {
		return true
	}
	if p.cfg.MinMarketCapM > 0 && capM < p.cfg.MinMarketCapM {
		return false
	}
	if p.cfg.MaxMarketCapM > 0 && capM > p.cfg.MaxMarketCapM {
		return false
	}
	return true
}
