package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-research/newswatch/internal/api"
	"github.com/meridian-research/newswatch/internal/api/handlers"
	"github.com/meridian-research/newswatch/internal/scheduler"
	"github.com/meridian-research/newswatch/internal/scheduler/jobs"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the full watcher: polling, alerts and the API server",
	Long: `Starts the complete service:
- feed polling on the configured interval
- nightly alert-history maintenance
- the HTTP API with the live alert websocket

Example:
  go run ./cmd/newswatch watch
  go run ./cmd/newswatch watch --dry-run`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Newswatch ===")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	hub := api.NewHub(a.logger)
	a.addSink(hub)

	sched := scheduler.New(a.logger)
	if err := sched.AddJob(jobs.NewPollJob(a.source, a.pipeline, a.cfg.Pipeline.PollInterval, a.logger)); err != nil {
		return err
	}
	if a.repo != nil {
		if err := sched.AddJob(jobs.NewMaintenanceJob(a.repo, a.logger)); err != nil {
			return err
		}
	}

	statusHandler := handlers.NewStatusHandler(a.db, sched, a.logger)
	alertHandler := handlers.NewAlertHandler(a.history, a.logger)
	classifyHandler := handlers.NewClassifyHandler(a.logger)
	server := api.New(a.cfg, a.logger, api.NewRouter(statusHandler, alertHandler, classifyHandler, hub, a.logger))

	sched.Start()
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	// Run one cycle immediately instead of waiting out the first interval.
	if err := sched.RunJob("poll"); err != nil {
		a.logger.WithError(err).Warn("Initial poll trigger failed")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		sched.Stop()
		return err
	case sig := <-quit:
		a.logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
