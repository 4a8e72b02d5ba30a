package debate

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/verifai-labs/verifai/internal/agents"
	"github.com/verifai-labs/verifai/internal/llm/llmtest"
	"github.com/verifai-labs/verifai/internal/model"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newAdvocate(role agents.Role, d *llmtest.Double) *agents.Advocate {
	cfg := model.AgentModelConfig{
		Model:       "m",
		MaxTokens:   200,
		CallTimeout: 5 * time.Second,
	}
	return agents.NewAdvocate(role, d, nil, cfg, testLogger())
}

func TestDebate_BothComplete(t *testing.T) {
	prover := newAdvocate(agents.RoleProver, &llmtest.Double{Text: "for"})
	debunker := newAdvocate(agents.RoleDebunker, &llmtest.Double{Text: "against"})
	o := NewOrchestrator(prover, debunker, 2*time.Second, testLogger())

	start := time.Now()
	result, err := o.Debate(context.Background(), "claim", []string{"src"}, false)
	if err != nil {
		t.Fatalf("debate: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("debate exceeded its deadline despite both sides completing")
	}

	if result.Prover.Text != "for" || result.Debunker.Text != "against" {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.SoftFailed() {
		t.Error("unexpected soft failure")
	}
}

func TestDebate_AggregateTimeout(t *testing.T) {
	prover := newAdvocate(agents.RoleProver, &llmtest.Double{Text: "for"})
	debunker := newAdvocate(agents.RoleDebunker, &llmtest.Double{Text: "slow", Delay: 2 * time.Second})
	o := NewOrchestrator(prover, debunker, 50*time.Millisecond, testLogger())

	start := time.Now()
	_, err := o.Debate(context.Background(), "claim", []string{"src"}, false)
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	// Bounded overshoot: returns promptly after the deadline, never hangs
	if elapsed > 500*time.Millisecond {
		t.Errorf("orchestrator overshot deadline by too much: %v", elapsed)
	}
}

func TestDebate_OneSoftFailureContinues(t *testing.T) {
	prover := newAdvocate(agents.RoleProver, &llmtest.Double{Text: "solid argument"})
	debunker := newAdvocate(agents.RoleDebunker, &llmtest.Double{Err: errors.New("both models down")})
	o := NewOrchestrator(prover, debunker, 2*time.Second, testLogger())

	result, err := o.Debate(context.Background(), "claim", []string{"src"}, false)
	if err != nil {
		t.Fatalf("soft failure must not abort the debate: %v", err)
	}

	if !result.SoftFailed() {
		t.Error("expected soft failure flag")
	}
	if result.Prover.Text != "solid argument" {
		t.Errorf("prover output lost: %q", result.Prover.Text)
	}
	if result.Debunker.Text != "Unable to generate debunker argument." {
		t.Errorf("expected debunker placeholder, got %q", result.Debunker.Text)
	}
}

func TestDebate_ParentCancellation(t *testing.T) {
	prover := newAdvocate(agents.RoleProver, &llmtest.Double{Text: "x", Delay: time.Second})
	debunker := newAdvocate(agents.RoleDebunker, &llmtest.Double{Text: "y", Delay: time.Second})
	o := NewOrchestrator(prover, debunker, 10*time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := o.Debate(ctx, "claim", []string{"src"}, false)
	if err == nil {
		t.Fatal("expected error after parent cancellation")
	}
}
