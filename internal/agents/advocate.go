// Package agents implements the three debate agents: two adversarial
// advocates (prover, debunker) and the judge that adjudicates them.
package agents

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/verifai-labs/verifai/internal/llm"
	"github.com/verifai-labs/verifai/internal/model"
)

// Role identifies which side an advocate argues
type Role string

const (
	RoleProver   Role = "prover"
	RoleDebunker Role = "debunker"
)

// Argument is one advocate's output. SoftFailed marks the placeholder path
// where both the primary and fallback model calls failed; the pipeline
// continues with the other side's output rather than aborting.
type Argument struct {
	Text       string
	Receipt    model.AgentReceipt
	SoftFailed bool
}

// Advocate wraps a primary model call with a single secondary-model retry.
// On any primary failure it immediately tries the fallback once with the
// same prompt intent; the primary is never retried.
type Advocate struct {
	role     Role
	primary  llm.Provider
	fallback llm.Provider // nil disables the fallback chain
	cfg      model.AgentModelConfig
	logger   *log.Logger
}

// NewAdvocate creates an advocate for the given role
func NewAdvocate(role Role, primary, fallback llm.Provider, cfg model.AgentModelConfig, logger *log.Logger) *Advocate {
	return &Advocate{
		role:     role,
		primary:  primary,
		fallback: fallback,
		cfg:      cfg,
		logger:   logger,
	}
}

// Placeholder returns the fixed soft-failure argument for the role
func (a *Advocate) Placeholder() string {
	return fmt.Sprintf("Unable to generate %s argument.", a.role)
}

// Argue builds the role's case for or against the claim. Never returns an
// error: total failure of both models yields the placeholder argument with
// an empty receipt.
func (a *Advocate) Argue(ctx context.Context, claim string, sourceTexts []string, isPrediction bool) Argument {
	var prompt, system string
	switch a.role {
	case RoleDebunker:
		prompt = debunkerPrompt(claim, sourceTexts, isPrediction)
		system = debunkerSystemPrompt
	default:
		prompt = proverPrompt(claim, sourceTexts, isPrediction)
		system = proverSystemPrompt
	}

	primary, err := a.call(ctx, a.primary, llm.Request{
		Model:       a.cfg.Model,
		System:      system,
		Prompt:      prompt,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err == nil {
		return Argument{Text: primary.Text, Receipt: primary.Receipt}
	}
	a.logger.Printf("%s.primary.failed model=%s err=%v", a.role, a.cfg.Model, err)

	if a.fallback == nil {
		return Argument{Text: a.Placeholder(), SoftFailed: true}
	}

	secondary, err := a.call(ctx, a.fallback, llm.Request{
		Model:       a.cfg.FallbackModel,
		System:      system,
		Prompt:      prompt,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		a.logger.Printf("%s.fallback.failed model=%s err=%v", a.role, a.cfg.FallbackModel, err)
		return Argument{Text: a.Placeholder(), SoftFailed: true}
	}

	return Argument{Text: secondary.Text, Receipt: secondary.Receipt}
}

// call wraps the provider call in this agent's own timeout, independent of
// provider-side timeout behavior.
func (a *Advocate) call(ctx context.Context, p llm.Provider, req llm.Request) (*llm.Completion, error) {
	timeout := a.cfg.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return p.Complete(ctx, req)
}
