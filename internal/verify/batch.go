package verify

import (
	"context"

	"github.com/verifai-labs/verifai/internal/economics"
	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/worker"
)

// unlogged runs the pipeline without per-request performance logging;
// VerifyBatch records each entry itself once the billed price is final.
type unlogged struct{ s *Service }

func (u unlogged) Verify(ctx context.Context, claim, callerID string) (*model.Result, error) {
	return u.s.verify(ctx, claim, callerID)
}

// VerifyBatch fans the claims out over a worker pool, applies the volume
// discount to the settled subset, and records each result at its billed
// price. Results come back in input order.
func (s *Service) VerifyBatch(ctx context.Context, claims []string, callerID string, concurrency int) []*worker.ClaimResult {
	results := worker.NewBatchProcessor(unlogged{s}, concurrency).ProcessClaims(ctx, claims, callerID)

	billable := make([]*model.Result, len(results))
	for i, r := range results {
		billable[i] = r.Result
	}
	economics.ApplyBatchPricing(billable, s.engine.PriceUSD())

	for _, r := range results {
		if r.Result != nil {
			s.record(r.Result)
		}
	}
	return results
}
