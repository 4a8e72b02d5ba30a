// Package economics is the single source of truth for "did the customer get
// charged": it maps judge confidence to verdict overrides, refund flags, and
// manual-review flags, and prices each agent call. Pure arithmetic, no I/O.
package economics

import (
	"github.com/verifai-labs/verifai/internal/model"
)

// Engine applies the refund and review floors to a judged verdict
type Engine struct {
	refundFloor float64
	reviewFloor float64
	priceUSD    float64
}

// NewEngine creates a decision engine. The review floor is clamped up to the
// refund floor so a refunded result is always also review-flagged.
func NewEngine(cfg model.EconomicsConfig) *Engine {
	refund := cfg.RefundFloor
	review := cfg.ReviewFloor
	if review < refund {
		review = refund
	}
	return &Engine{
		refundFloor: refund,
		reviewFloor: review,
		priceUSD:    cfg.PriceUSD,
	}
}

// PriceUSD returns the flat per-verification price before any batch discount
func (e *Engine) PriceUSD() float64 { return e.priceUSD }

// Decide converts judge confidence into the settlement outcome.
// Below the refund floor the verdict is overridden to the claim-kind's
// "inconclusive" label so a refunded result is never shown as confident.
func (e *Engine) Decide(verdict model.VerdictLabel, confidence float64, manualReviewSoFar bool, kind model.ClaimKind) model.SettlementDecision {
	shouldRefund := confidence < e.refundFloor

	decision := model.SettlementDecision{
		FinalVerdict:  verdict,
		ManualReview:  manualReviewSoFar || confidence < e.reviewFloor,
		PaymentStatus: model.PaymentSettled,
	}

	if shouldRefund {
		decision.FinalVerdict = model.InconclusiveFor(kind)
		decision.PaymentStatus = model.PaymentRefundedUncertainty
	}

	return decision
}

// SystemError is the terminal decision for retrieval failures, debate
// timeouts, and any other uncaught pipeline fault.
func SystemError() model.SettlementDecision {
	return model.SettlementDecision{
		FinalVerdict:  model.VerdictError,
		ManualReview:  true,
		PaymentStatus: model.PaymentRefundedSystemError,
	}
}
