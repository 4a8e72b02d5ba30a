package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verifai-labs/verifai/internal/verify"
)

var (
	perfLogPath string
	metricsJSON bool
)

// metricsCmd represents the metrics command
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Summarize the performance log",
	Long: `Metrics aggregates the JSONL performance log written by verify and batch:
request counts, settle and refund rates, average confidence and latency,
and the revenue/cost margin.`,
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)

	metricsCmd.Flags().StringVar(&perfLogPath, "perf-log", "", "performance log path (default from config)")
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "print the summary as JSON")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	path := perfLogPath
	if path == "" {
		path = cfg.Output.PerfLogPath
	}

	summary, err := verify.Summarize(path)
	if err != nil {
		return err
	}

	if metricsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("Performance log: %s\n\n", path)
	fmt.Printf("Requests:        %d\n", summary.Requests)
	fmt.Printf("  settled:       %d (%.0f%%)\n", summary.Settled, summary.SettleRate*100)
	fmt.Printf("  refunded:      %d\n", summary.Refunded)
	fmt.Printf("  pre-filtered:  %d\n", summary.PreFiltered)
	fmt.Printf("  system errors: %d\n", summary.SystemErrors)
	fmt.Printf("Review rate:     %.0f%%\n", summary.ReviewRate*100)
	fmt.Printf("Avg confidence:  %.2f\n", summary.AvgConfidence)
	fmt.Printf("Avg latency:     %.1fs\n", summary.AvgExecution)
	fmt.Printf("\nRevenue:         $%.2f\n", summary.TotalRevenueUSD)
	fmt.Printf("Model spend:     $%.4f\n", summary.TotalCostUSD)
	fmt.Printf("Net margin:      $%.4f\n", summary.NetMarginUSD)
	return nil
}
