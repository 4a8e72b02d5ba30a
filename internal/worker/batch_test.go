package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/ratelimit"
)

// fakeVerifier echoes each claim back as a settled result
type fakeVerifier struct {
	delay time.Duration
}

func (v *fakeVerifier) Verify(ctx context.Context, claim, callerID string) (*model.Result, error) {
	if v.delay > 0 {
		time.Sleep(v.delay)
	}
	return &model.Result{
		Claim:         claim,
		Verdict:       model.VerdictVerified,
		Confidence:    0.9,
		PaymentStatus: model.PaymentSettled,
	}, nil
}

func TestProcessClaims_OrderPreserved(t *testing.T) {
	claims := make([]string, 12)
	for i := range claims {
		claims[i] = fmt.Sprintf("claim number %d", i)
	}

	b := NewBatchProcessor(&fakeVerifier{delay: 5 * time.Millisecond}, 4)
	results := b.ProcessClaims(context.Background(), claims, "batch-caller")

	if len(results) != len(claims) {
		t.Fatalf("got %d results, want %d", len(results), len(claims))
	}
	for i, r := range results {
		if r.Pos != i {
			t.Fatalf("result %d has Pos %d, completion order leaked", i, r.Pos)
		}
		if r.Claim != claims[i] {
			t.Errorf("result %d: claim = %q, want %q", i, r.Claim, claims[i])
		}
		if r.Err != nil || r.Result == nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
	}
}

func TestProcessClaims_LargeBatchSingleWorker(t *testing.T) {
	// Far more claims than one worker's channel buffers can hold.
	claims := make([]string, 24)
	for i := range claims {
		claims[i] = fmt.Sprintf("claim number %d", i)
	}
	b := NewBatchProcessor(&fakeVerifier{}, 1)

	done := make(chan []*ClaimResult, 1)
	go func() { done <- b.ProcessClaims(context.Background(), claims, "batch-caller") }()

	select {
	case results := <-done:
		if len(results) != len(claims) {
			t.Fatalf("got %d results, want %d", len(results), len(claims))
		}
		for i, r := range results {
			if r.Pos != i {
				t.Fatalf("result %d has Pos %d", i, r.Pos)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch hung with claims exceeding the pool's buffer capacity")
	}
}

func TestProcessClaims_Empty(t *testing.T) {
	b := NewBatchProcessor(&fakeVerifier{}, 2)
	if got := b.ProcessClaims(context.Background(), nil, "c"); len(got) != 0 {
		t.Errorf("got %d results for empty batch", len(got))
	}
}

// limitedVerifier rejects everything past an admission window
type limitedVerifier struct {
	window *ratelimit.Window
}

func (v *limitedVerifier) Verify(ctx context.Context, claim, callerID string) (*model.Result, error) {
	if err := v.window.Admit(callerID); err != nil {
		return nil, err
	}
	return &model.Result{Claim: claim, PaymentStatus: model.PaymentSettled}, nil
}

func TestProcessClaims_RateLimitSurfacesAsErr(t *testing.T) {
	v := &limitedVerifier{window: ratelimit.NewWindow(3, time.Minute)}
	b := NewBatchProcessor(v, 2)

	results := b.ProcessClaims(context.Background(), []string{"a", "b", "c", "d", "e"}, "same-caller")

	rejected := 0
	for _, r := range results {
		if r.Err != nil {
			rejected++
		}
	}
	if rejected != 2 {
		t.Errorf("rejected %d claims, want 2", rejected)
	}
}

func TestReadClaimsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.txt")
	content := "The Eiffel Tower is in Paris\n\n# a comment\nWater boils at 100C at sea level\n   \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	claims, err := ReadClaimsFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"The Eiffel Tower is in Paris", "Water boils at 100C at sea level"}
	if len(claims) != len(want) {
		t.Fatalf("got %d claims, want %d", len(claims), len(want))
	}
	for i := range want {
		if claims[i] != want[i] {
			t.Errorf("claim %d = %q, want %q", i, claims[i], want[i])
		}
	}
}

func TestReadClaimsFromFile_Missing(t *testing.T) {
	if _, err := ReadClaimsFromFile("/nonexistent/claims.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
