package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single polling cycle and exit",
	Long: `Fetches all configured feeds once, runs the full pipeline over the
batch and prints the cycle summary.

Example:
  go run ./cmd/newswatch scan
  go run ./cmd/newswatch scan --dry-run`,
	RunE: runScan,
}

var scanTimeout time.Duration

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Minute, "cycle deadline")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	items, err := a.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}

	summary := a.pipeline.Run(ctx, items)

	fmt.Printf("cycle %s: %d items, %d alerted, %d duplicates, %d filtered, %d passed, %d failed\n",
		summary.CycleID, summary.Total, summary.Alerted, summary.Duplicates,
		summary.Filtered, summary.Passed, summary.Failed)
	return nil
}
