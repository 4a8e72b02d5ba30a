package llm

import (
	"fmt"
	"os"
	"strings"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "deepinfra":
		if config.BaseURL == "" {
			config.BaseURL = DeepInfraBaseURL
		}
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, deepinfra, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromEnv builds a provider config with the API key resolved from the
// conventional environment variable for that provider.
func ConfigFromEnv(provider string, timeoutSeconds int) Config {
	cfg := DefaultConfig()
	cfg.Provider = provider
	if timeoutSeconds > 0 {
		cfg.Timeout = timeoutSeconds
	}

	switch strings.ToLower(provider) {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case "deepinfra":
		cfg.APIKey = os.Getenv("DEEPINFRA_API_KEY")
		cfg.BaseURL = DeepInfraBaseURL
	case "anthropic", "claude":
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		cfg.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg
}
