package model

// AgentReceipt records token usage for exactly one advocate or judge call.
// Never mutated after creation; used only to compute cost.
type AgentReceipt struct {
	Model        string `json:"model"`
	InputTokens  int    `json:"input"`
	OutputTokens int    `json:"output"`
}

// Empty reports whether the receipt carries no usage (soft-failed call)
func (r AgentReceipt) Empty() bool {
	return r.Model == "" && r.InputTokens == 0 && r.OutputTokens == 0
}
