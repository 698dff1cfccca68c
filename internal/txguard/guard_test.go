package txguard

import (
	"strings"
	"testing"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

func newGuard() *Guard {
	return New(config.Default())
}

func TestNonMonetaryActionsPass(t *testing.T) {
	g := newGuard()

	for _, name := range []string{
		model.ActionVerifyRecipient,
		model.ActionRespondToMessage,
		model.ActionLogEvent,
	} {
		v := g.Evaluate(model.CandidateAction{Name: name, Params: map[string]any{}})
		if !v.Approved {
			t.Errorf("%s: non-monetary action must pass, got %q", name, v.Reason)
		}
	}
}

func TestTransferTokenMissingParams(t *testing.T) {
	g := newGuard()

	v := g.Evaluate(model.CandidateAction{Name: model.ActionTransferToken, Params: map[string]any{}})
	if v.Approved {
		t.Fatal("transferToken with empty params must be rejected")
	}
	for _, p := range []string{"token", "to", "amount"} {
		if !strings.Contains(v.Reason, p) {
			t.Errorf("reason should cite missing %q, got %q", p, v.Reason)
		}
	}
}

func TestValidateParamsUnknownAction(t *testing.T) {
	v := ValidateParams(model.CandidateAction{Name: "mintUnicorns", Params: map[string]any{}})
	if v.Approved {
		t.Fatal("unknown blockchain action must be rejected, not errored")
	}
	if !strings.Contains(v.Reason, "unknown blockchain action") {
		t.Errorf("unexpected reason: %q", v.Reason)
	}
}

func TestClassifyAddress(t *testing.T) {
	g := newGuard()

	cases := []struct {
		addr string
		want Reputation
	}{
		{"0xknownScamAddress", RepMalicious},
		{"0x000000000000dead", RepSuspicious},
		{"0xsafeDEX", RepSafe},
		{"0xB", RepUnknown},
	}
	for _, c := range cases {
		if got := g.ClassifyAddress(c.addr); got != c.want {
			t.Errorf("ClassifyAddress(%q) = %s, want %s", c.addr, got, c.want)
		}
	}
}

func TestEvaluateRejectsBadAddresses(t *testing.T) {
	g := newGuard()

	v := g.Evaluate(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0xknownScamAddress", "value": 1.0},
	})
	if v.Approved || !strings.Contains(v.Reason, "malicious") {
		t.Errorf("expected malicious rejection, got %+v", v)
	}

	v = g.Evaluate(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0x0001234", "value": 1.0},
	})
	if v.Approved || !strings.Contains(v.Reason, "suspicious") {
		t.Errorf("expected suspicious rejection, got %+v", v)
	}
}

func TestContractDataFailClosed(t *testing.T) {
	g := newGuard()

	// Trusted prefix skips data verification entirely.
	v := g.Evaluate(model.CandidateAction{
		Name:   model.ActionCallContract,
		Params: map[string]any{"to": "0xsafeDEX", "data": "0xdeadbeef"},
	})
	if !v.Approved {
		t.Errorf("trusted contract should pass, got %q", v.Reason)
	}

	// selfdestruct is explicitly dangerous.
	v = g.Evaluate(model.CandidateAction{
		Name:   model.ActionCallContract,
		Params: map[string]any{"to": "0xB", "data": "0x00selfdestruct00"},
	})
	if v.Approved || !strings.Contains(v.Reason, "selfdestruct") {
		t.Errorf("expected selfdestruct rejection, got %+v", v)
	}

	// Anything else is unverifiable by default.
	v = g.Evaluate(model.CandidateAction{
		Name:   model.ActionCallContract,
		Params: map[string]any{"to": "0xB", "data": "0xa9059cbb"},
	})
	if v.Approved || !strings.Contains(v.Reason, "cannot be verified") {
		t.Errorf("expected fail-closed rejection, got %+v", v)
	}

	// Bare "0x" placeholder data is not contract interaction.
	v = g.Evaluate(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0xB", "value": 1.0, "data": "0x"},
	})
	if !v.Approved {
		t.Errorf("placeholder data should not trigger contract checks, got %q", v.Reason)
	}
}

func TestValueCeiling(t *testing.T) {
	g := newGuard()

	v := g.Evaluate(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0xB", "value": 1001.0},
	})
	if v.Approved || !strings.Contains(v.Reason, "exceeds the maximum") {
		t.Errorf("expected ceiling rejection, got %+v", v)
	}

	v = g.Evaluate(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0xB", "value": 1000.0},
	})
	if !v.Approved {
		t.Errorf("ceiling value should pass, got %q", v.Reason)
	}
}

// First failing check wins: a scam address with an over-ceiling value
// reports the address, not the value.
func TestFirstFailureWins(t *testing.T) {
	g := newGuard()

	v := g.Evaluate(model.CandidateAction{
		Name:   model.ActionExecuteTransaction,
		Params: map[string]any{"to": "0xknownScamAddress", "value": 99999.0},
	})
	if v.Approved {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(v.Reason, "malicious") {
		t.Errorf("expected address reputation to win, got %q", v.Reason)
	}
}

func TestSignMessageParams(t *testing.T) {
	g := newGuard()

	v := g.Evaluate(model.CandidateAction{
		Name:   model.ActionSignMessage,
		Params: map[string]any{"message": "gm"},
	})
	if !v.Approved {
		t.Errorf("signMessage with message param should pass, got %q", v.Reason)
	}
}
