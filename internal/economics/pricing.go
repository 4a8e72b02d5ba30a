package economics

import "github.com/verifai-labs/verifai/internal/model"

// modelPrice is USD per 1M tokens
type modelPrice struct {
	Input  float64
	Output float64
}

// modelPrices covers the models the default configuration can reach.
// Unknown models (including local Ollama fallbacks) cost zero.
var modelPrices = map[string]modelPrice{
	// DeepInfra
	"meta-llama/Llama-3.3-70B-Instruct-Turbo": {Input: 0.59, Output: 0.79},
	"deepseek-ai/DeepSeek-V3":                 {Input: 0.27, Output: 1.10},

	// Anthropic
	"claude-3-5-haiku-20241022": {Input: 1.00, Output: 5.00},
}

// Cost computes the USD cost of one agent call from its token receipt
func Cost(receipt model.AgentReceipt) float64 {
	price, ok := modelPrices[receipt.Model]
	if !ok {
		return 0
	}
	inputCost := float64(receipt.InputTokens) / 1_000_000 * price.Input
	outputCost := float64(receipt.OutputTokens) / 1_000_000 * price.Output
	return inputCost + outputCost
}
