package epistemic

import (
	"strings"
	"testing"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

func TestCheck(t *testing.T) {
	c := NewChecker(config.Default())

	cases := []struct {
		name      string
		action    model.CandidateAction
		uncertain bool
	}{
		{
			name: "high-value execution is uncertain",
			action: model.CandidateAction{
				Name:   model.ActionExecuteTransaction,
				Params: map[string]any{"to": "0xB", "value": 1500.0},
			},
			uncertain: true,
		},
		{
			name: "threshold value is certain",
			action: model.CandidateAction{
				Name:   model.ActionExecuteTransaction,
				Params: map[string]any{"to": "0xB", "value": 1000.0},
			},
			uncertain: false,
		},
		{
			name: "long response is uncertain",
			action: model.CandidateAction{
				Name:   model.ActionRespondToMessage,
				Params: map[string]any{"content": strings.Repeat("a", 501)},
			},
			uncertain: true,
		},
		{
			// 400 three-byte runes: 1200 bytes but only 400 characters.
			name: "multi-byte response counts runes not bytes",
			action: model.CandidateAction{
				Name:   model.ActionRespondToMessage,
				Params: map[string]any{"content": strings.Repeat("世", 400)},
			},
			uncertain: false,
		},
		{
			name: "multi-byte response over the rune limit is uncertain",
			action: model.CandidateAction{
				Name:   model.ActionRespondToMessage,
				Params: map[string]any{"content": strings.Repeat("世", 501)},
			},
			uncertain: true,
		},
		{
			name: "short response is certain",
			action: model.CandidateAction{
				Name:   model.ActionRespondToMessage,
				Params: map[string]any{"content": "short answer"},
			},
			uncertain: false,
		},
		{
			name: "other actions never flagged",
			action: model.CandidateAction{
				Name:   model.ActionVerifyRecipient,
				Params: map[string]any{"address": "0xB"},
			},
			uncertain: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flag := c.Check(tc.action)
			if flag.Uncertain != tc.uncertain {
				t.Errorf("uncertain = %v, want %v (%s)", flag.Uncertain, tc.uncertain, flag.Reason)
			}
			if flag.Uncertain && flag.Reason == "" {
				t.Error("uncertainty must carry a reason")
			}
		})
	}
}

// Ethically rejected input can still be flagged: the checker is
// independent of the ethical verdict.
func TestCheckIndependentOfEthics(t *testing.T) {
	c := NewChecker(config.Default())

	flag := c.Check(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0xknownScamAddress", "value": 9999.0},
	})
	if !flag.Uncertain {
		t.Error("scam destination does not exempt a high value from uncertainty")
	}
}
