package model

// Critique is the aggregated outcome of one pipeline run: every proposed
// action partitioned into approved/rejected, the reasons that eroded
// confidence, and a human-readable explanation. Immutable once computed.
type Critique struct {
	Category      Category          `json:"category"`
	Confidence    float64           `json:"confidence"`
	Limitations   []string          `json:"limitations"`
	Uncertainties []string          `json:"uncertainties"`
	Approved      []CandidateAction `json:"approved_actions"`
	Rejected      []CandidateAction `json:"rejected_actions"`
	Explanation   string            `json:"explanation"`
}

// DeferralDecision says whether to withhold autonomous action and hand
// the result to a human, with the first matching reason. Derived on
// demand from a Critique; never persisted.
type DeferralDecision struct {
	ShouldDefer bool   `json:"should_defer"`
	Reason      string `json:"reason"`
}
