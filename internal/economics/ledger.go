package economics

import "github.com/verifai-labs/verifai/internal/model"

// Ledger accumulates the token receipts of one verification request: at most
// one each for prover, debunker, and judge. It is an explicit value threaded
// through the pipeline, never shared across concurrent requests — each
// pipeline invocation owns its own instance.
type Ledger struct {
	Prover   model.AgentReceipt
	Debunker model.AgentReceipt
	Judge    model.AgentReceipt
}

// TotalCostUSD derives the request's total model spend
func (l *Ledger) TotalCostUSD() float64 {
	return Cost(l.Prover) + Cost(l.Debunker) + Cost(l.Judge)
}

// TotalTokens sums input and output tokens across all three agents
func (l *Ledger) TotalTokens() (input, output int) {
	for _, r := range []model.AgentReceipt{l.Prover, l.Debunker, l.Judge} {
		input += r.InputTokens
		output += r.OutputTokens
	}
	return input, output
}

// Zero reports whether no agent call was billed (pre-filtered or failed
// before any paid work)
func (l *Ledger) Zero() bool {
	return l.Prover.Empty() && l.Debunker.Empty() && l.Judge.Empty()
}
