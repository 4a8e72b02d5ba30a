package model

// Claim is the immutable input to a verification request
type Claim struct {
	Text string    `json:"text"` // The claim text itself
	Kind ClaimKind `json:"kind"` // Derived once by the pre-filter, never mutated
}

// ClaimKind categorizes the nature of the claim
type ClaimKind string

const (
	ClaimFactual       ClaimKind = "factual"       // Empirical claims with objective evidence
	ClaimPrediction    ClaimKind = "prediction"    // Forward-looking claims (weather, events, trends)
	ClaimPhilosophical ClaimKind = "philosophical" // Normative/value judgments, no empirical ground truth
)

// IsPrediction reports whether the claim is judged on likelihood rather than truth
func (k ClaimKind) IsPrediction() bool {
	return k == ClaimPrediction
}
