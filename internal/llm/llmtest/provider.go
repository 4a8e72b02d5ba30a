// Package llmtest provides an explicit test-double implementing the same
// Complete capability interface as the real providers, so pipeline code can
// be exercised without credentials or network access.
package llmtest

import (
	"context"
	"sync"
	"time"

	"github.com/verifai-labs/verifai/internal/llm"
	"github.com/verifai-labs/verifai/internal/model"
)

// Double is a scriptable llm.Provider
type Double struct {
	// ProviderName is returned by Name(); defaults to "double"
	ProviderName string

	// Text is the completion text returned on success
	Text string

	// Receipt is attached to successful completions. A zero Receipt gets
	// the request model and small token counts filled in.
	Receipt model.AgentReceipt

	// Err, when set, makes every Complete call fail
	Err error

	// Delay, when set, makes Complete block before responding so callers
	// can exercise timeout paths. Complete still honors ctx cancellation.
	Delay time.Duration

	mu    sync.Mutex
	calls []llm.Request
}

// Name returns the configured provider name
func (d *Double) Name() string {
	if d.ProviderName == "" {
		return "double"
	}
	return d.ProviderName
}

// IsAvailable reports whether the double is configured to succeed
func (d *Double) IsAvailable(ctx context.Context) bool {
	return d.Err == nil
}

// Complete returns the scripted completion, error, or blocks for Delay
func (d *Double) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	d.mu.Lock()
	d.calls = append(d.calls, req)
	d.mu.Unlock()

	if d.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d.Delay):
		}
	}

	if d.Err != nil {
		return nil, d.Err
	}

	receipt := d.Receipt
	if receipt.Empty() {
		receipt = model.AgentReceipt{Model: req.Model, InputTokens: 100, OutputTokens: 50}
	}

	return &llm.Completion{Text: d.Text, Receipt: receipt}, nil
}

// Calls returns the requests seen so far
func (d *Double) Calls() []llm.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]llm.Request, len(d.calls))
	copy(out, d.calls)
	return out
}

// CallCount returns how many times Complete was invoked
func (d *Double) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}
