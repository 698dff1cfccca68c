package ethos

import (
	"fmt"

	"github.com/ndelias/ethos/internal/model"
)

// ActionProposal is a proposed operation with parameters and a
// justification.
type ActionProposal struct {
	Name          string
	Params        map[string]any
	Justification string
}

// Result is the outcome of one evaluation.
type Result struct {
	RunID         string
	Category      string
	Approved      []ActionProposal
	Rejected      []ActionProposal
	Confidence    float64
	Limitations   []string
	Uncertainties []string
	Deferred      bool
	Reason        string
	Explanation   string
}

// Proceeds returns true if the decision permits autonomous action.
func (r Result) Proceeds() bool {
	return !r.Deferred
}

// DeferredError is returned when an evaluation defers to a human. The
// ReviewKey identifies the pending review; approving it lets a retry of
// the same record proceed.
type DeferredError struct {
	Result    Result
	ReviewKey string
}

func (e *DeferredError) Error() string {
	return fmt.Sprintf("ethos deferred: %s", e.Result.Reason)
}

func toProposals(actions []model.CandidateAction) []ActionProposal {
	if len(actions) == 0 {
		return nil
	}
	out := make([]ActionProposal, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionProposal{
			Name:          a.Name,
			Params:        a.Params,
			Justification: a.Justification,
		})
	}
	return out
}

func toResult(runID string, c model.Critique, d model.DeferralDecision) Result {
	return Result{
		RunID:         runID,
		Category:      string(c.Category),
		Approved:      toProposals(c.Approved),
		Rejected:      toProposals(c.Rejected),
		Confidence:    c.Confidence,
		Limitations:   c.Limitations,
		Uncertainties: c.Uncertainties,
		Deferred:      d.ShouldDefer,
		Reason:        d.Reason,
		Explanation:   c.Explanation,
	}
}
