package economics

import (
	"math"
	"testing"

	"github.com/verifai-labs/verifai/internal/model"
)

func testEngine() *Engine {
	return NewEngine(model.EconomicsConfig{
		PriceUSD:    0.05,
		RefundFloor: 0.40,
		ReviewFloor: 0.65,
	})
}

func TestDecide_BelowRefundFloor(t *testing.T) {
	e := testEngine()

	for _, conf := range []float64{0.0, 0.1, 0.39, 0.399} {
		d := e.Decide(model.VerdictVerified, conf, false, model.ClaimFactual)
		if d.PaymentStatus != model.PaymentRefundedUncertainty {
			t.Errorf("confidence %v: status = %q, want refunded", conf, d.PaymentStatus)
		}
		if d.FinalVerdict != model.VerdictInconclusive {
			t.Errorf("confidence %v: verdict = %q, want Inconclusive override", conf, d.FinalVerdict)
		}
		if !d.ManualReview {
			t.Errorf("confidence %v: refunded result must be review-flagged", conf)
		}
		if !d.Refunded() {
			t.Errorf("confidence %v: Refunded() = false", conf)
		}
	}
}

func TestDecide_RefundOverridesPredictionVerdict(t *testing.T) {
	e := testEngine()

	d := e.Decide(model.VerdictLikely, 0.2, false, model.ClaimPrediction)
	if d.FinalVerdict != model.VerdictUncertain {
		t.Errorf("verdict = %q, want Uncertain for refunded prediction", d.FinalVerdict)
	}
	if d.PaymentStatus != model.PaymentRefundedUncertainty {
		t.Errorf("status = %q", d.PaymentStatus)
	}
}

func TestDecide_ReviewBand(t *testing.T) {
	e := testEngine()

	// In [refund, review): charged but flagged.
	for _, conf := range []float64{0.40, 0.5, 0.649} {
		d := e.Decide(model.VerdictUnverified, conf, false, model.ClaimFactual)
		if d.PaymentStatus != model.PaymentSettled {
			t.Errorf("confidence %v: status = %q, want settled", conf, d.PaymentStatus)
		}
		if !d.ManualReview {
			t.Errorf("confidence %v: want manual review in band", conf)
		}
		if d.FinalVerdict != model.VerdictUnverified {
			t.Errorf("confidence %v: verdict = %q, must not be overridden", conf, d.FinalVerdict)
		}
	}
}

func TestDecide_HighConfidence(t *testing.T) {
	e := testEngine()

	d := e.Decide(model.VerdictVerified, 0.9, false, model.ClaimFactual)
	if d.PaymentStatus != model.PaymentSettled || d.ManualReview {
		t.Errorf("high confidence: got %+v, want settled without review", d)
	}
	if d.FinalVerdict != model.VerdictVerified {
		t.Errorf("verdict = %q, want Verified", d.FinalVerdict)
	}
}

func TestDecide_ManualReviewSticky(t *testing.T) {
	e := testEngine()

	// A review flag raised earlier in the pipeline survives high confidence.
	d := e.Decide(model.VerdictVerified, 0.95, true, model.ClaimFactual)
	if !d.ManualReview {
		t.Error("pre-existing review flag must not be cleared")
	}
	if d.PaymentStatus != model.PaymentSettled {
		t.Errorf("status = %q, want settled", d.PaymentStatus)
	}
}

func TestNewEngine_ClampsReviewFloor(t *testing.T) {
	e := NewEngine(model.EconomicsConfig{
		PriceUSD:    0.05,
		RefundFloor: 0.6,
		ReviewFloor: 0.3, // Misconfigured below the refund floor
	})

	// At 0.5 the refund floor wins and the result must still carry review.
	d := e.Decide(model.VerdictVerified, 0.5, false, model.ClaimFactual)
	if !d.Refunded() || !d.ManualReview {
		t.Errorf("got %+v, want refunded and review-flagged", d)
	}
}

func TestSystemError(t *testing.T) {
	d := SystemError()
	if d.FinalVerdict != model.VerdictError {
		t.Errorf("verdict = %q, want Error", d.FinalVerdict)
	}
	if d.PaymentStatus != model.PaymentRefundedSystemError {
		t.Errorf("status = %q", d.PaymentStatus)
	}
	if !d.ManualReview {
		t.Error("system errors must be review-flagged")
	}
}

func TestCost_KnownModel(t *testing.T) {
	got := Cost(model.AgentReceipt{
		Model:        "claude-3-5-haiku-20241022",
		InputTokens:  1_000_000,
		OutputTokens: 1_000_000,
	})
	if math.Abs(got-6.00) > 1e-9 {
		t.Errorf("cost = %v, want 6.00", got)
	}
}

func TestCost_UnknownModelIsFree(t *testing.T) {
	got := Cost(model.AgentReceipt{Model: "llama3.2", InputTokens: 500, OutputTokens: 500})
	if got != 0 {
		t.Errorf("cost = %v, want 0 for unpriced local model", got)
	}
}

func TestLedger_Totals(t *testing.T) {
	l := Ledger{
		Prover:   model.AgentReceipt{Model: "meta-llama/Llama-3.3-70B-Instruct-Turbo", InputTokens: 1000, OutputTokens: 200},
		Debunker: model.AgentReceipt{Model: "deepseek-ai/DeepSeek-V3", InputTokens: 1000, OutputTokens: 200},
		Judge:    model.AgentReceipt{Model: "claude-3-5-haiku-20241022", InputTokens: 2000, OutputTokens: 500},
	}

	in, out := l.TotalTokens()
	if in != 4000 || out != 900 {
		t.Errorf("tokens = (%d, %d), want (4000, 900)", in, out)
	}

	want := Cost(l.Prover) + Cost(l.Debunker) + Cost(l.Judge)
	if got := l.TotalCostUSD(); math.Abs(got-want) > 1e-12 {
		t.Errorf("total cost = %v, want %v", got, want)
	}
	if l.Zero() {
		t.Error("ledger with receipts reported Zero")
	}

	var empty Ledger
	if !empty.Zero() {
		t.Error("empty ledger must report Zero")
	}
	if empty.TotalCostUSD() != 0 {
		t.Error("empty ledger must cost nothing")
	}
}

func TestBatchDiscount_Tiers(t *testing.T) {
	cases := []struct {
		size int
		want float64
	}{
		{0, 0},
		{1, 0},
		{4, 0},
		{5, 0.10},
		{9, 0.10},
		{10, 0.15},
		{50, 0.15},
	}
	for _, c := range cases {
		if got := BatchDiscount(c.size); got != c.want {
			t.Errorf("BatchDiscount(%d) = %v, want %v", c.size, got, c.want)
		}
	}
}

func TestApplyBatchPricing_LargeTier(t *testing.T) {
	// 10 claims, 2 refunded by the pre-filter: the 15% tier comes from the
	// full batch size and applies only to the 8 settled claims.
	results := make([]*model.Result, 10)
	for i := range results {
		results[i] = &model.Result{PaymentStatus: model.PaymentSettled}
	}
	results[0].PaymentStatus = model.PaymentRefundedUncertainty
	results[7].PaymentStatus = model.PaymentRefundedUncertainty

	ApplyBatchPricing(results, 0.05)

	var total float64
	for _, r := range results {
		total += r.PriceUSD
	}
	want := 8 * 0.05 * 0.85
	if math.Abs(total-want) > 1e-12 {
		t.Errorf("batch revenue = %v, want %v", total, want)
	}
}

func TestApplyBatchPricing_SettledOnly(t *testing.T) {
	results := make([]*model.Result, 6)
	for i := range results {
		results[i] = &model.Result{PaymentStatus: model.PaymentSettled}
	}
	results[2].PaymentStatus = model.PaymentRefundedUncertainty
	results[4].PaymentStatus = model.PaymentRefundedSystemError

	ApplyBatchPricing(results, 0.05)

	// Tier is set by the whole batch (6 claims), not the settled subset.
	wantPrice := 0.05 * 0.90
	for i, r := range results {
		switch i {
		case 2, 4:
			if r.PriceUSD != 0 {
				t.Errorf("result %d: refunded claim billed %v", i, r.PriceUSD)
			}
		default:
			if math.Abs(r.PriceUSD-wantPrice) > 1e-12 {
				t.Errorf("result %d: price = %v, want %v", i, r.PriceUSD, wantPrice)
			}
		}
	}
}
