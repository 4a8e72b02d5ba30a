// Package llm wraps the completion back-ends behind a single capability
// interface: given a prompt, return text plus a token receipt, or fail.
// Every provider is treated as untrusted; callers always wrap Complete in
// their own timeout regardless of provider-side behavior.
package llm

import (
	"context"

	"github.com/verifai-labs/verifai/internal/model"
)

// Provider defines the interface for LLM completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the request
	Complete(ctx context.Context, req Request) (*Completion, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request contains the input for a completion call
type Request struct {
	// Model is the specific model to use (provider-specific)
	Model string

	// System is the system prompt (role instruction)
	System string

	// Prompt is the user prompt
	Prompt string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling randomness
	Temperature float32
}

// Completion contains a provider's output plus its token receipt
type Completion struct {
	// Text is the generated completion text, whitespace-trimmed
	Text string

	// Receipt tracks token consumption for this one call
	Receipt model.AgentReceipt
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "deepinfra", "anthropic", "ollama"
	Provider string

	// APIKey for OpenAI/DeepInfra/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g. DeepInfra's OpenAI-compatible API, Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout: 30,
	}
}
