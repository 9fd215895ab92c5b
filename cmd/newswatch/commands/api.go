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
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the API server without the poller",
	Long: `Starts the HTTP API only. Useful next to a separately-run watcher
sharing the same database.

Endpoints:
  GET  /health                 - Health check
  GET  /api/v1/alerts/recent   - Recently dispatched alerts
  POST /api/v1/classify        - Ad-hoc classification
  GET  /api/v1/jobs            - Scheduled job status
  GET  /ws/alerts              - Live alert stream

Example:
  go run ./cmd/newswatch api
  go run ./cmd/newswatch api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Newswatch API Server ===")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	hub := api.NewHub(a.logger)
	a.addSink(hub)

	statusHandler := handlers.NewStatusHandler(a.db, nil, a.logger)
	alertHandler := handlers.NewAlertHandler(a.history, a.logger)
	classifyHandler := handlers.NewClassifyHandler(a.logger)
	server := api.New(a.cfg, a.logger, api.NewRouter(statusHandler, alertHandler, classifyHandler, hub, a.logger))

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
