package alert

import (
	"context"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/pkg/logger"
)

// LogSink writes alerts to the structured log. Used in dry-run mode and as
// an always-on companion to external sinks.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log.WithField("module", "alert")}
}

func (s *LogSink) Send(_ context.Context, alert contracts.Alert) error {
	s.logger.WithFields(map[string]interface{}{
		"symbol":   alert.Symbol,
		"category": string(alert.Category),
		"score":    alert.Score,
		"decision": string(alert.Decision),
		"p50":      alert.EstimateP50,
		"p90":      alert.EstimateP90,
		"title":    alert.Title,
	}).Info("ALERT")
	return nil
}
