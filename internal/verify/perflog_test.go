package verify

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verifai-labs/verifai/internal/model"
)

func TestPerfLog_RecordAndSummarize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "performance.jsonl")
	p := NewPerfLog(path, testLogger())

	now := time.Now()
	p.Record(entryFor(&model.Result{
		Claim:            "settled claim",
		Verdict:          model.VerdictVerified,
		Confidence:       0.9,
		PaymentStatus:    model.PaymentSettled,
		TotalCostUSD:     0.002,
		PriceUSD:         0.05,
		ExecutionSeconds: 1.0,
	}, now))
	p.Record(entryFor(&model.Result{
		Claim:            "refunded claim",
		Verdict:          model.VerdictInconclusive,
		Confidence:       0.2,
		ManualReview:     true,
		PaymentStatus:    model.PaymentRefundedUncertainty,
		TotalCostUSD:     0.003,
		ExecutionSeconds: 2.0,
	}, now))
	p.Record(entryFor(&model.Result{
		Claim:            "broken claim",
		Verdict:          model.VerdictError,
		ManualReview:     true,
		PaymentStatus:    model.PaymentRefundedSystemError,
		ExecutionSeconds: 0.5,
	}, now))

	s, err := Summarize(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Requests != 3 || s.Settled != 1 || s.Refunded != 2 || s.SystemErrors != 1 {
		t.Errorf("counts = %+v", s)
	}
	if math.Abs(s.TotalRevenueUSD-0.05) > 1e-12 {
		t.Errorf("revenue = %v, want 0.05", s.TotalRevenueUSD)
	}
	if math.Abs(s.TotalCostUSD-0.005) > 1e-12 {
		t.Errorf("cost = %v, want 0.005", s.TotalCostUSD)
	}
	if math.Abs(s.NetMarginUSD-0.045) > 1e-12 {
		t.Errorf("margin = %v, want 0.045", s.NetMarginUSD)
	}
	wantReview := 2.0 / 3.0
	if math.Abs(s.ReviewRate-wantReview) > 1e-9 {
		t.Errorf("review rate = %v, want %v", s.ReviewRate, wantReview)
	}
}

func TestPerfLog_EmptyPathDisables(t *testing.T) {
	if p := NewPerfLog("", testLogger()); p != nil {
		t.Error("empty path must disable the log")
	}
}

func TestSummarize_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf.jsonl")
	content := `{"claim":"ok","payment_status":"settled","confidence_score":0.8,"price_usd":0.05}
not json at all
{"claim":"ok2","payment_status":"refunded_due_to_uncertainty"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Summarize(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Requests != 2 {
		t.Errorf("requests = %d, want 2 (malformed line skipped)", s.Requests)
	}
}

func TestSummarize_MissingFile(t *testing.T) {
	if _, err := Summarize("/nonexistent/perf.jsonl"); err == nil {
		t.Error("expected error for missing log")
	}
}
