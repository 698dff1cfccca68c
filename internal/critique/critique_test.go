package critique

import (
	"math"
	"strings"
	"testing"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/propose"
)

func newAggregator() *Aggregator {
	return NewAggregator(config.Default())
}

func action(name string, params map[string]any) model.CandidateAction {
	return model.CandidateAction{Name: name, Params: params, Justification: "test"}
}

func TestAllApprovedFullConfidence(t *testing.T) {
	ag := newAggregator()
	p := propose.Proposal{
		Reasoning: "Transaction of 1.5 to \"0xB\".",
		Actions: []model.CandidateAction{
			action(model.ActionVerifyRecipient, map[string]any{"address": "0xB"}),
			action(model.ActionCheckGasPrice, map[string]any{"chainId": "1"}),
			action(model.ActionExecuteTransaction, map[string]any{"to": "0xB", "value": 1.5}),
		},
	}

	c := ag.Critique(p, model.CategoryTransaction)

	if c.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", c.Confidence)
	}
	if len(c.Approved) != 3 || len(c.Rejected) != 0 {
		t.Errorf("expected 3 approved, got %d/%d", len(c.Approved), len(c.Rejected))
	}
	if len(c.Limitations) != 0 || len(c.Uncertainties) != 0 {
		t.Errorf("clean run should have empty limitation/uncertainty lists")
	}
	if !strings.Contains(c.Explanation, "Confidence: 1.00") {
		t.Errorf("explanation missing confidence line:\n%s", c.Explanation)
	}
}

func TestRejectionPenalty(t *testing.T) {
	ag := newAggregator()
	p := propose.Proposal{
		Actions: []model.CandidateAction{
			action(model.ActionVerifyRecipient, map[string]any{"address": "0xknownScamAddress"}),
			action(model.ActionExecuteTransaction, map[string]any{"to": "0xknownScamAddress", "value": 2.0}),
		},
	}

	c := ag.Critique(p, model.CategoryTransaction)

	if math.Abs(c.Confidence-0.8) > 1e-9 {
		t.Errorf("one rejection should cost 0.2, got confidence %v", c.Confidence)
	}
	if len(c.Rejected) != 1 || len(c.Limitations) != 1 {
		t.Errorf("expected one rejection with one limitation, got %d/%d",
			len(c.Rejected), len(c.Limitations))
	}
	if !strings.Contains(c.Limitations[0], "kingdom of ends") {
		t.Errorf("unexpected limitation: %q", c.Limitations[0])
	}
}

func TestUncertaintyPenalty(t *testing.T) {
	ag := newAggregator()
	p := propose.Proposal{
		Actions: []model.CandidateAction{
			action(model.ActionRespondToMessage, map[string]any{"content": strings.Repeat("x", 600)}),
		},
	}

	c := ag.Critique(p, model.CategoryMessage)

	if math.Abs(c.Confidence-0.9) > 1e-9 {
		t.Errorf("one uncertainty should cost 0.1, got %v", c.Confidence)
	}
	if len(c.Uncertainties) != 1 {
		t.Errorf("expected one uncertainty, got %d", len(c.Uncertainties))
	}
	// Uncertain but still approved.
	if len(c.Approved) != 1 {
		t.Errorf("uncertainty must not reject, got %d approved", len(c.Approved))
	}
}

// An approved high-value execution erodes confidence twice: once for the
// uncertainty flag and once for being expensive.
func TestExpensiveApprovedPenalty(t *testing.T) {
	ag := newAggregator()
	p := propose.Proposal{
		Actions: []model.CandidateAction{
			action(model.ActionExecuteTransaction, map[string]any{"to": "0xB", "value": 5000.0}),
		},
	}

	c := ag.Critique(p, model.CategoryTransaction)

	if math.Abs(c.Confidence-0.8) > 1e-9 {
		t.Errorf("expected 1.0 - 0.1 - 0.1 = 0.8, got %v", c.Confidence)
	}
	if len(c.Approved) != 1 {
		t.Errorf("expensive execution is still approved, got %d", len(c.Approved))
	}
}

func TestConfidenceFloor(t *testing.T) {
	ag := newAggregator()

	var actions []model.CandidateAction
	for i := 0; i < 10; i++ {
		actions = append(actions,
			action(model.ActionExecuteTransaction, map[string]any{"to": "0xknownScamAddress", "value": 2000.0}))
	}

	c := ag.Critique(propose.Proposal{Actions: actions}, model.CategoryTransaction)

	if c.Confidence != 0 {
		t.Errorf("confidence must floor at 0, got %v", c.Confidence)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		t.Errorf("confidence outside [0,1]: %v", c.Confidence)
	}
}

func TestPartitionPreservesOrder(t *testing.T) {
	ag := newAggregator()
	p := propose.Proposal{
		Actions: []model.CandidateAction{
			action(model.ActionVerifyRecipient, map[string]any{"address": "0xA"}),
			action(model.ActionExecuteTransaction, map[string]any{"to": "0xknownScamAddress", "value": 1.0}),
			action(model.ActionCheckGasPrice, map[string]any{"chainId": "1"}),
			action(model.ActionExecuteTransaction, map[string]any{"to": "0xB", "value": -1.0}),
		},
	}

	c := ag.Critique(p, model.CategoryTransaction)

	if c.Approved[0].Name != model.ActionVerifyRecipient || c.Approved[1].Name != model.ActionCheckGasPrice {
		t.Errorf("approved order broken: %v", c.Approved)
	}
	if len(c.Rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(c.Rejected))
	}
	if c.Limitations[0] != "kingdom of ends: recipient 0xknownScamAddress is a known scam address" {
		t.Errorf("limitation order broken: %q", c.Limitations[0])
	}
}

func TestEmptyProposal(t *testing.T) {
	ag := newAggregator()

	c := ag.Critique(propose.Proposal{}, model.CategoryUnknown)

	if c.Confidence != 1.0 {
		t.Errorf("no actions means nothing eroded confidence: %v", c.Confidence)
	}
	if len(c.Approved) != 0 || len(c.Rejected) != 0 {
		t.Errorf("expected empty partitions")
	}
	if !strings.Contains(c.Explanation, "Confidence: 1.00") {
		t.Errorf("explanation should still carry the confidence line:\n%s", c.Explanation)
	}
}

func TestExplanationLines(t *testing.T) {
	ag := newAggregator()
	p := propose.Proposal{
		Reasoning: "Message with question intent and neutral sentiment.",
		Actions: []model.CandidateAction{
			action(model.ActionRespondToMessage, map[string]any{"content": "sure, happy to manipulate you"}),
		},
	}

	c := ag.Critique(p, model.CategoryMessage)

	if !strings.HasPrefix(c.Explanation, "Message with question intent") {
		t.Errorf("explanation should start with proposer reasoning:\n%s", c.Explanation)
	}
	if !strings.Contains(c.Explanation, "Rejected: respondToMessage") {
		t.Errorf("explanation missing per-action line:\n%s", c.Explanation)
	}
}

func TestRenderSections(t *testing.T) {
	c := model.Critique{
		Confidence:    0.8,
		Approved:      []model.CandidateAction{action(model.ActionVerifyRecipient, nil)},
		Rejected:      []model.CandidateAction{action(model.ActionExecuteTransaction, nil)},
		Limitations:   []string{"kingdom of ends: bad recipient"},
		Uncertainties: []string{"high value"},
		Explanation:   "Confidence: 0.80",
	}

	out := Render(c)

	for _, want := range []string{
		"Approved actions:",
		"verifyRecipient: test",
		"executeTransaction: rejected due to ethical constraints",
		"Limitations:",
		"Uncertainties:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	out := Render(model.Critique{Confidence: 1.0})
	if !strings.Contains(out, "No actions approved.") {
		t.Errorf("empty critique should say so:\n%s", out)
	}
}

func FuzzConfidenceBounds(f *testing.F) {
	f.Add(3, 2, 1500.0)
	f.Add(0, 0, 0.0)
	f.Add(10, 10, -50.0)

	f.Fuzz(func(t *testing.T, nReject, nOK int, value float64) {
		if nReject < 0 || nOK < 0 || nReject+nOK > 64 {
			t.Skip()
		}
		ag := newAggregator()

		var actions []model.CandidateAction
		for i := 0; i < nReject; i++ {
			actions = append(actions,
				action(model.ActionExecuteTransaction, map[string]any{"to": "0xknownScamAddress", "value": value}))
		}
		for i := 0; i < nOK; i++ {
			actions = append(actions,
				action(model.ActionExecuteTransaction, map[string]any{"to": "0xB", "value": value}))
		}

		c := ag.Critique(propose.Proposal{Actions: actions}, model.CategoryTransaction)
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Errorf("confidence outside [0,1]: %v (reject=%d ok=%d value=%v)",
				c.Confidence, nReject, nOK, value)
		}
	})
}
