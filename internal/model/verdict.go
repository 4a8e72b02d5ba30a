package model

// VerdictLabel is the judge's ruling on a claim.
// Factual claims use Verified/Unverified/Inconclusive, predictions use
// Likely/Unlikely/Uncertain. Error is reserved for terminal system failures.
type VerdictLabel string

const (
	VerdictVerified     VerdictLabel = "Verified"
	VerdictUnverified   VerdictLabel = "Unverified"
	VerdictInconclusive VerdictLabel = "Inconclusive"
	VerdictLikely       VerdictLabel = "Likely"
	VerdictUnlikely     VerdictLabel = "Unlikely"
	VerdictUncertain    VerdictLabel = "Uncertain"
	VerdictError        VerdictLabel = "Error"
)

// InconclusiveFor returns the claim-kind-appropriate "cannot tell" label
func InconclusiveFor(kind ClaimKind) VerdictLabel {
	if kind.IsPrediction() {
		return VerdictUncertain
	}
	return VerdictInconclusive
}

// EvidencePoint is one judge-cited item for or against the claim.
// Weight is always traceable to a Source.Weight from the same request.
type EvidencePoint struct {
	SourceLabel string  `json:"source_label"`
	Weight      float64 `json:"weight"`
	Point       string  `json:"point"`
}

// Verdict is the judge's structured adjudication
type Verdict struct {
	Label           VerdictLabel    `json:"verdict"`
	Confidence      float64         `json:"confidence_score"` // In [0,1]
	Reasoning       string          `json:"summary"`
	EvidenceFor     []EvidencePoint `json:"evidence_for,omitempty"`
	EvidenceAgainst []EvidencePoint `json:"evidence_against,omitempty"`
}

// PaymentStatus is the advisory settlement outcome for the payment gate
type PaymentStatus string

const (
	PaymentSettled             PaymentStatus = "settled"
	PaymentRefundedUncertainty PaymentStatus = "refunded_due_to_uncertainty"
	PaymentRefundedSystemError PaymentStatus = "refunded_due_to_system_error"
)

// SettlementDecision maps judge confidence to the economic outcome.
// Derived, never stored independently of the Verdict that produced it.
type SettlementDecision struct {
	FinalVerdict  VerdictLabel  `json:"final_verdict"`
	ManualReview  bool          `json:"manual_review"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// Refunded reports whether the customer is not charged for this request
func (d SettlementDecision) Refunded() bool {
	return d.PaymentStatus != PaymentSettled
}
