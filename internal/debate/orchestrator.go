// Package debate runs the two advocates concurrently under one aggregate
// deadline and joins their arguments for the judge.
package debate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/verifai-labs/verifai/internal/agents"
)

// TimeoutError marks the aggregate debate deadline elapsing before both
// advocates completed. Unlike a single advocate's soft failure this is
// terminal: no partial output is salvaged from a timed-out debate.
type TimeoutError struct {
	Deadline time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("debate timed out after %v", e.Deadline)
}

// Result holds both advocates' arguments. Either side may independently be
// the placeholder from a soft failure; that does not abort the pipeline.
type Result struct {
	Prover   agents.Argument
	Debunker agents.Argument
}

// SoftFailed reports whether either side returned its placeholder
func (r *Result) SoftFailed() bool {
	return r.Prover.SoftFailed || r.Debunker.SoftFailed
}

// Orchestrator dispatches the prover and debunker as concurrent tasks.
// The aggregate deadline bounds total debate wall-clock regardless of which
// side is slow, independent of each advocate's internal call timeouts.
type Orchestrator struct {
	prover   *agents.Advocate
	debunker *agents.Advocate
	deadline time.Duration
	logger   *log.Logger
}

// NewOrchestrator creates a debate orchestrator
func NewOrchestrator(prover, debunker *agents.Advocate, deadline time.Duration, logger *log.Logger) *Orchestrator {
	if deadline <= 0 {
		deadline = 30 * time.Second
	}
	return &Orchestrator{
		prover:   prover,
		debunker: debunker,
		deadline: deadline,
		logger:   logger,
	}
}

// Debate runs both advocates concurrently and joins them under the aggregate
// deadline. On timeout, in-flight model calls are abandoned via context
// cancellation and a TimeoutError is returned.
func (o *Orchestrator) Debate(ctx context.Context, claim string, sourceTexts []string, isPrediction bool) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	proverCh := make(chan agents.Argument, 1)
	debunkerCh := make(chan agents.Argument, 1)

	go func() {
		proverCh <- o.prover.Argue(ctx, claim, sourceTexts, isPrediction)
	}()
	go func() {
		debunkerCh <- o.debunker.Argue(ctx, claim, sourceTexts, isPrediction)
	}()

	timer := time.NewTimer(o.deadline)
	defer timer.Stop()

	var result Result
	for pending := 2; pending > 0; pending-- {
		select {
		case arg := <-proverCh:
			result.Prover = arg
			proverCh = nil
		case arg := <-debunkerCh:
			result.Debunker = arg
			debunkerCh = nil
		case <-timer.C:
			o.logger.Printf("debate.timeout deadline=%v", o.deadline)
			return nil, &TimeoutError{Deadline: o.deadline}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// Both sides may have raced cancellation into quick placeholders;
	// a canceled request is still abandoned, not adjudicated.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.logger.Printf("debate.done prover_len=%d debunker_len=%d", len(result.Prover.Text), len(result.Debunker.Text))
	return &result, nil
}
