// Package commands implements the newswatch CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dryRun  bool
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newswatch",
	Short: "Newswatch - market-moving corporate news detection",
	Long: `Newswatch Unified CLI

Polls corporate news feeds, classifies each item into a market event
category, scores its materiality and alerts on items that survive the
legitimacy gates. Exactly one alert per distinct item, ever.

Usage:
  go run ./cmd/newswatch [command]

Examples:
  go run ./cmd/newswatch watch
  go run ./cmd/newswatch scan
  go run ./cmd/newswatch classify "Acme Corp announces definitive merger agreement"
  go run ./cmd/newswatch api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "in-memory ledger, alerts to log only")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
