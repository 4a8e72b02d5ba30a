package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/verifai-labs/verifai/internal/economics"
	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/verify"
	"github.com/verifai-labs/verifai/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchOutput  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies claims concurrently:
- Read claims from the input file (one per line, # comments skipped)
- Verify claims in parallel with a configurable worker count
- Apply the volume discount to the settled portion of the batch
  (10% for 5 or more claims, 15% for 10 or more)

Example:
  verifai batch claims.txt
  verifai batch claims.txt --concurrency 8 --output results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write full results to a JSON file")
	batchCmd.Flags().StringVar(&callerID, "caller", "cli", "caller identity for rate limiting")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable source caching (force fresh retrieval)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = !noCache

	svc, err := verify.NewService(cfg, newLogger())
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	claims, err := worker.ReadClaimsFromFile(file)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}

	// The service applies the volume discount and logs each result at its
	// billed price.
	results := svc.VerifyBatch(ctx, claims, callerID, concurrency)

	var settled, refunded, rejected int
	var revenue, cost float64
	for _, r := range results {
		if r.Err != nil {
			rejected++
			fmt.Printf("  ! %q rejected: %v\n", r.Claim, r.Err)
			continue
		}
		res := r.Result
		if res.Settled() {
			settled++
			revenue += res.PriceUSD
		} else {
			refunded++
		}
		cost += res.TotalCostUSD
		fmt.Printf("  %s (%.2f) %s\n", res.Verdict, res.Confidence, res.Claim)
	}

	discount := economics.BatchDiscount(len(results))
	fmt.Printf("\nBatch of %d: %d settled, %d refunded", len(results), settled, refunded)
	if rejected > 0 {
		fmt.Printf(", %d rate-limited", rejected)
	}
	fmt.Println()
	if discount > 0 {
		fmt.Printf("Volume discount: %.0f%%\n", discount*100)
	}
	fmt.Printf("Revenue: $%.2f  Model spend: $%.4f\n", revenue, cost)

	if batchOutput != "" {
		if err := writeBatchResults(batchOutput, results); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Printf("Results written to %s\n", batchOutput)
	}
	return nil
}

func writeBatchResults(path string, results []*worker.ClaimResult) error {
	out := make([]*model.Result, 0, len(results))
	for _, r := range results {
		if r.Result != nil {
			out = append(out, r.Result)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
