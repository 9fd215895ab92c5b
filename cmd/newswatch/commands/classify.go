package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-research/newswatch/internal/classify"
	"github.com/meridian-research/newswatch/internal/score"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify and score one headline from the command line",
	Long: `Runs the deterministic classifier and scorer on ad-hoc text and
prints the verdict. No config, network or storage involved.

Example:
  go run ./cmd/newswatch classify "Acme Corp announces definitive merger agreement at $5.00 per share"
  go run ./cmd/newswatch classify --url https://www.prnewswire.com/x --cap 45 "Acme wins $12M defense contract"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

var (
	classifyURL string
	classifyCap float64
)

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyURL, "url", "", "source URL for provenance checks")
	classifyCmd.Flags().Float64Var(&classifyCap, "cap", 0, "subject market cap in $M (0 = unknown)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	verdict := classify.Classify(text, classifyURL, classifyCap)
	sc := score.Score(score.Input{
		Category:      verdict.Category,
		Text:          text,
		OnWire:        verdict.OnWire,
		MarketCapM:    classifyCap,
		SingleSubject: true,
	})

	fmt.Printf("category:   %s\n", verdict.Category)
	fmt.Printf("weight:     %.2f\n", verdict.Weight)
	fmt.Printf("score:      %.3f\n", sc)
	fmt.Printf("on_wire:    %v\n", verdict.OnWire)
	fmt.Printf("suppressed: %v\n", verdict.Suppressed)
	if verdict.AmountM > 0 {
		fmt.Printf("amount:     $%.1fM\n", verdict.AmountM)
	}
	if verdict.Ratio > 0 {
		fmt.Printf("ratio:      %.3f\n", verdict.Ratio)
	}
	return nil
}
