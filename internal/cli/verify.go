package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/verify"
)

var (
	verifyTimeout time.Duration
	callerID      string
	outputJSON    bool
	noCache       bool
	enrichPages   bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single claim through adversarial debate",
	Long: `Verify runs one claim through the full pipeline:
- Pre-filter philosophical claims (refunded instantly, no model spend)
- Retrieve and weight live web sources
- Run the Prover/Debunker debate under an aggregate deadline
- Let the Judge rule on the evidence
- Settle: charge, refund, or flag for manual review

Example:
  verifai verify "The Eiffel Tower is 330 metres tall"
  verifai verify "Bitcoin will double by December" --json
  verifai verify "Water boils at 100C at sea level" --enrich-pages`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&callerID, "caller", "cli", "caller identity for rate limiting")
	verifyCmd.Flags().BoolVar(&outputJSON, "json", false, "print the full result as JSON")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable source caching (force fresh retrieval)")
	verifyCmd.Flags().BoolVar(&enrichPages, "enrich-pages", false, "fetch source pages directly when the search API returns no text")
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = !noCache
	cfg.Search.EnrichPages = enrichPages

	svc, err := verify.NewService(cfg, newLogger())
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	result, err := svc.Verify(ctx, claim, callerID)
	if err != nil {
		return fmt.Errorf("verification rejected: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(result)
	return nil
}

func printResult(r *model.Result) {
	fmt.Printf("\nClaim:      %s\n", r.Claim)
	fmt.Printf("Type:       %s\n", r.ClaimKind)
	fmt.Printf("Verdict:    %s (confidence %.2f)\n", r.Verdict, r.Confidence)
	if r.Summary != "" {
		fmt.Printf("Summary:    %s\n", r.Summary)
	}
	if r.PreFiltered {
		fmt.Printf("Filtered:   %s\n", r.FilterReason)
	}

	fmt.Printf("Payment:    %s", r.PaymentStatus)
	if r.Settled() {
		fmt.Printf(" ($%.2f)", r.PriceUSD)
	}
	fmt.Println()
	if r.ManualReview {
		fmt.Println("Review:     flagged for manual review")
	}

	if len(r.Citations) > 0 {
		fmt.Println("\nSources:")
		for i, src := range r.Citations {
			fmt.Printf("  %d. [%.2f] %s\n", i+1, src.Weight, src.URL)
		}
	}
	for _, e := range r.EvidenceFor {
		fmt.Printf("  + (%s, %.2f) %s\n", e.SourceLabel, e.Weight, e.Point)
	}
	for _, e := range r.EvidenceAgainst {
		fmt.Printf("  - (%s, %.2f) %s\n", e.SourceLabel, e.Weight, e.Point)
	}

	if verbose {
		fmt.Printf("\nProver:     %s\n", r.Debate.Prover)
		fmt.Printf("Debunker:   %s\n", r.Debate.Debunker)
		fmt.Printf("Audit:      %s\n", r.AuditTrail)
		fmt.Printf("Cost:       $%.4f\n", r.TotalCostUSD)
	}
	fmt.Printf("\nCompleted in %.1fs\n", r.ExecutionSeconds)
}
