package audit

import "github.com/ndelias/ethos/internal/model"

// Entry is one line in the hash-chained JSONL decision log.
// All fields are concrete types (no map[string]any) to guarantee
// deterministic json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp  string   `json:"ts"`
	RunID      string   `json:"run_id"`
	Category   string   `json:"category"`
	Proposed   int      `json:"proposed"`
	Approved   []string `json:"approved"`
	Rejected   []string `json:"rejected"`
	Confidence float64  `json:"confidence"`
	Deferred   bool     `json:"deferred"`
	Reason     string   `json:"reason"`
	ConfigHash string   `json:"config_hash"`
	PrevHash   string   `json:"prev_hash"`
}

// FromEvaluation flattens a critique and its deferral decision into a
// log entry. Action names only; params stay out of the audit trail.
func FromEvaluation(runID string, c model.Critique, d model.DeferralDecision, configHash string) Entry {
	approved := make([]string, 0, len(c.Approved))
	for _, a := range c.Approved {
		approved = append(approved, a.Name)
	}
	rejected := make([]string, 0, len(c.Rejected))
	for _, a := range c.Rejected {
		rejected = append(rejected, a.Name)
	}
	return Entry{
		RunID:      runID,
		Category:   string(c.Category),
		Proposed:   len(c.Approved) + len(c.Rejected),
		Approved:   approved,
		Rejected:   rejected,
		Confidence: c.Confidence,
		Deferred:   d.ShouldDefer,
		Reason:     d.Reason,
		ConfigHash: configHash,
	}
}
