package economics

import "github.com/verifai-labs/verifai/internal/model"

// Bulk discount tiers by batch size
const (
	smallBatchSize     = 5
	largeBatchSize     = 10
	smallBatchDiscount = 0.10
	largeBatchDiscount = 0.15
)

// BatchDiscount returns the discount fraction for a batch of the given size
func BatchDiscount(batchSize int) float64 {
	switch {
	case batchSize >= largeBatchSize:
		return largeBatchDiscount
	case batchSize >= smallBatchSize:
		return smallBatchDiscount
	default:
		return 0
	}
}

// ApplyBatchPricing sets each result's billed price: the discounted flat
// price for settled claims, zero for refunded ones. The tier comes from the
// batch size but the discount only ever applies to the settled subset.
func ApplyBatchPricing(results []*model.Result, priceUSD float64) {
	discount := BatchDiscount(len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Settled() {
			r.PriceUSD = priceUSD * (1 - discount)
		} else {
			r.PriceUSD = 0
		}
	}
}
