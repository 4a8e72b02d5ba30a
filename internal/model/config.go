package model

import "time"

// Config is the complete verifai configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Search    SearchConfig    `yaml:"search"`
	Agents    AgentsConfig    `yaml:"agents"`
	Economics EconomicsConfig `yaml:"economics"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior shared by search and page fetches
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// SearchConfig controls source retrieval
type SearchConfig struct {
	BaseURL          string        `yaml:"base_url"`
	APIKey           string        `yaml:"-"` // From EXA_API_KEY, never persisted
	NumResults       int           `yaml:"num_results"`
	MaxSourceTextLen int           `yaml:"max_source_text_len"`
	Timeout          time.Duration `yaml:"timeout"` // Hard retrieval deadline
	EnrichPages      bool          `yaml:"enrich_pages"`
	PageRPS          float64       `yaml:"page_rps"`   // Per-domain page fetch rate
	PageBurst        int           `yaml:"page_burst"` // Per-domain burst
}

// AgentModelConfig configures one advocate's primary and fallback models
type AgentModelConfig struct {
	Provider         string        `yaml:"provider"`
	Model            string        `yaml:"model"`
	FallbackProvider string        `yaml:"fallback_provider"`
	FallbackModel    string        `yaml:"fallback_model"`
	Temperature      float32       `yaml:"temperature"`
	MaxTokens        int           `yaml:"max_tokens"`
	CallTimeout      time.Duration `yaml:"call_timeout"`
}

// AgentsConfig configures the three debate agents
type AgentsConfig struct {
	Prover        AgentModelConfig `yaml:"prover"`
	Debunker      AgentModelConfig `yaml:"debunker"`
	Judge         AgentModelConfig `yaml:"judge"`
	DebateTimeout time.Duration    `yaml:"debate_timeout"` // Aggregate deadline over both advocates
}

// EconomicsConfig controls the settlement decision
type EconomicsConfig struct {
	PriceUSD    float64 `yaml:"price_usd"`    // Flat revenue per verification
	RefundFloor float64 `yaml:"refund_floor"` // Confidence below this forces a refund
	ReviewFloor float64 `yaml:"review_floor"` // Confidence below this flags manual review (>= RefundFloor)
}

// RateLimitConfig controls the inbound per-caller admission gate
type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests"`
	Window      time.Duration `yaml:"window"`
}

// CacheConfig controls search-result caching
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// OutputConfig controls logging and the performance log
type OutputConfig struct {
	Verbose     bool   `yaml:"verbose"`
	PerfLogPath string `yaml:"perf_log_path"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "VerifAI/1.0 (+https://github.com/verifai-labs/verifai)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			BaseURL:          "https://api.exa.ai",
			NumResults:       5,
			MaxSourceTextLen: 500,
			Timeout:          20 * time.Second,
			EnrichPages:      false,
			PageRPS:          2,
			PageBurst:        2,
		},
		Agents: AgentsConfig{
			Prover: AgentModelConfig{
				Provider:         "deepinfra",
				Model:            "meta-llama/Llama-3.3-70B-Instruct-Turbo",
				FallbackProvider: "ollama",
				FallbackModel:    "llama3.1",
				Temperature:      0.3,
				MaxTokens:        200,
				CallTimeout:      25 * time.Second,
			},
			Debunker: AgentModelConfig{
				Provider:         "deepinfra",
				Model:            "deepseek-ai/DeepSeek-V3",
				FallbackProvider: "ollama",
				FallbackModel:    "llama3.1",
				Temperature:      0.4,
				MaxTokens:        200,
				CallTimeout:      25 * time.Second,
			},
			Judge: AgentModelConfig{
				Provider:    "anthropic",
				Model:       "claude-3-5-haiku-20241022",
				Temperature: 0,
				MaxTokens:   500,
				CallTimeout: 25 * time.Second,
			},
			DebateTimeout: 30 * time.Second,
		},
		Economics: EconomicsConfig{
			PriceUSD:    0.05,
			RefundFloor: 0.40,
			ReviewFloor: 0.65,
		},
		RateLimit: RateLimitConfig{
			MaxRequests: 60,
			Window:      time.Minute,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Output: OutputConfig{
			PerfLogPath: "logs/performance.jsonl",
		},
	}
}
