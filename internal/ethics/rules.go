// Package ethics applies the categorical-imperative test suite to
// candidate actions. Three deterministic rules run in fixed order with
// fail-fast, first-failure-reason semantics. The rule table is
// deliberately narrow and extensible, not an exhaustive ethics engine:
// any action/parameter combination outside the literal checks passes.
package ethics

import (
	"strings"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

// approvedReason is the fixed verdict reason when every rule passes.
const approvedReason = "passes universalizability, humanity-as-end, and kingdom-of-ends formulations"

// Rule is one independently pluggable moral test. Rules must be pure and
// deterministic for identical input.
type Rule interface {
	Name() string
	Evaluate(a model.CandidateAction) model.Verdict
}

// Suite runs an ordered rule list, short-circuiting at the first failure.
type Suite struct {
	rules []Rule
}

// NewSuite builds the three-formulation suite in canonical order.
func NewSuite(cfg *config.Config) *Suite {
	return &Suite{rules: []Rule{
		universalizability{},
		humanityAsEnd{},
		kingdomOfEnds{scamAddresses: cfg.Addresses.Scam},
	}}
}

// Rules exposes the ordered rule list, primarily for explanation output.
func (s *Suite) Rules() []Rule {
	return s.rules
}

// Evaluate runs every rule against the action in order and returns the
// first rejection, or approval when all pass.
func (s *Suite) Evaluate(a model.CandidateAction) model.Verdict {
	for _, r := range s.rules {
		if v := r.Evaluate(a); !v.Approved {
			return v
		}
	}
	return model.Verdict{Approved: true, Reason: approvedReason}
}

func approve() model.Verdict {
	return model.Verdict{Approved: true}
}

func reject(reason string) model.Verdict {
	return model.Verdict{Approved: false, Reason: reason}
}

// universalizability rejects maxims that collapse when universalized:
// taking value without consent, and responses written to mislead.
type universalizability struct{}

func (universalizability) Name() string { return "universalizability" }

func (universalizability) Evaluate(a model.CandidateAction) model.Verdict {
	switch a.Name {
	case model.ActionExecuteTransaction:
		if model.Num(a.Params, "value") < 0 {
			return reject("universalizability: taking value without consent cannot be universalized")
		}
	case model.ActionRespondToMessage:
		if containsWord(a.Params, "content", "mislead") {
			return reject("universalizability: misleading responses cannot be universalized")
		}
	}
	return approve()
}

// humanityAsEnd rejects actions that treat a person merely as a means:
// forced execution and manipulative responses.
type humanityAsEnd struct{}

func (humanityAsEnd) Name() string { return "humanity_as_end" }

func (humanityAsEnd) Evaluate(a model.CandidateAction) model.Verdict {
	switch a.Name {
	case model.ActionExecuteTransaction:
		if model.Has(a.Params, "force") {
			return reject("humanity as end: forced execution removes the counterparty's consent")
		}
	case model.ActionRespondToMessage:
		if containsWord(a.Params, "content", "manipulate") {
			return reject("humanity as end: manipulative responses treat the recipient as a means")
		}
	}
	return approve()
}

// kingdomOfEnds rejects actions no community of rational agents would
// legislate: paying known scam addresses and hate speech.
type kingdomOfEnds struct {
	scamAddresses []string
}

func (kingdomOfEnds) Name() string { return "kingdom_of_ends" }

func (r kingdomOfEnds) Evaluate(a model.CandidateAction) model.Verdict {
	switch a.Name {
	case model.ActionExecuteTransaction:
		to := model.Str(a.Params, "to")
		for _, scam := range r.scamAddresses {
			if to == scam {
				return reject("kingdom of ends: recipient " + to + " is a known scam address")
			}
		}
	case model.ActionRespondToMessage:
		if containsWord(a.Params, "content", "hate speech") {
			return reject("kingdom of ends: hate speech cannot be willed as universal law")
		}
	}
	return approve()
}

// containsWord reports whether a string param contains the keyword,
// case-insensitively.
func containsWord(params map[string]any, key, word string) bool {
	return strings.Contains(strings.ToLower(model.Str(params, key)), word)
}
