package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-research/newswatch/internal/alert"
	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/internal/enrich"
	"github.com/meridian-research/newswatch/internal/feed"
	"github.com/meridian-research/newswatch/internal/ledger"
	"github.com/meridian-research/newswatch/internal/orchestrator"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/database"
	"github.com/meridian-research/newswatch/pkg/logger"
	"github.com/meridian-research/newswatch/pkg/redis"
)

// app bundles the wired runtime components shared by the commands.
type app struct {
	cfg    *config.Config
	logger *logger.Logger

	db    *database.DB
	redis *redis.Client

	repo     *ledger.Repository // nil in dry-run
	ledger   contracts.Ledger
	history  contracts.AlertHistory
	source   *feed.Source
	enricher contracts.Enricher
	pipeline *orchestrator.Pipeline
	sinks    []contracts.AlertSink
}

// newApp loads config and wires the pipeline.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dryRun {
		cfg.Pipeline.DryRun = true
	}

	log := logger.New(cfg)

	a := &app{cfg: cfg, logger: log}

	if cfg.Pipeline.DryRun {
		mem := ledger.NewMemory()
		a.ledger = mem
		a.history = mem
		log.Info("Dry-run: in-memory ledger, external alerts disabled")
	} else {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db

		repo := ledger.NewRepository(db.Pool)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		a.repo = repo
		a.ledger = repo
		a.history = repo
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = redisClient

	a.enricher = enrich.New(cfg, redisClient, log)

	a.sinks = append(a.sinks, alert.NewLogSink(log))
	if cfg.Telegram.Enabled && !cfg.Pipeline.DryRun {
		tg, err := alert.NewTelegramSink(cfg.Telegram, log)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("telegram sink: %w", err)
		}
		a.sinks = append(a.sinks, tg)
	}
	a.source = feed.NewSource(cfg.Feeds, log)
	a.pipeline = orchestrator.NewPipeline(cfg.Pipeline, a.ledger, a.enricher, a.sinks, a.history, nil, log)

	return a, nil
}

// addSink appends an alert destination and rebuilds the pipeline around
// the extended set. Call before any cycle runs.
func (a *app) addSink(s contracts.AlertSink) {
	a.sinks = append(a.sinks, s)
	a.pipeline = orchestrator.NewPipeline(a.cfg.Pipeline, a.ledger, a.enricher, a.sinks, a.history, nil, a.logger)
}

func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
