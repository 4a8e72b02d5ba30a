package model

// Debate holds both advocates' arguments. Either side may be the fixed
// placeholder string when its primary and fallback calls both failed.
type Debate struct {
	Prover   string `json:"prover"`
	Debunker string `json:"debunker"`
}

// Result is the complete verification outcome returned for every request.
// The external contract guarantees a well-formed Result for every call,
// never a raised error.
type Result struct {
	Claim     string    `json:"claim"`
	ClaimKind ClaimKind `json:"claim_type"`

	Verdict         VerdictLabel    `json:"verdict"`
	Confidence      float64         `json:"confidence_score"`
	Summary         string          `json:"summary"`
	EvidenceFor     []EvidencePoint `json:"evidence_for,omitempty"`
	EvidenceAgainst []EvidencePoint `json:"evidence_against,omitempty"`

	Citations []Source `json:"citations"`
	Debate    Debate   `json:"debate"`

	ManualReview  bool          `json:"manual_review"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PreFiltered   bool          `json:"pre_filtered,omitempty"`
	FilterReason  string        `json:"filter_reason,omitempty"`
	AuditTrail    string        `json:"audit_trail"`

	TotalCostUSD     float64 `json:"total_cost_usd"`
	PriceUSD         float64 `json:"price_usd"`                // Billed price after any batch discount; 0 when refunded
	ExecutionSeconds float64 `json:"execution_time_seconds"`
}

// Settled reports whether the customer is charged for this result
func (r *Result) Settled() bool {
	return r.PaymentStatus == PaymentSettled
}
