// Package txguard is the deeper safety gate for monetary actions:
// anything that moves value, touches a contract, or signs on the user's
// behalf. It can gate pipeline output or be called standalone for ad-hoc
// checks. Non-monetary actions pass trivially; everything else runs a
// fixed check ladder where the first failure wins.
package txguard

import (
	"fmt"
	"strings"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

// Reputation classifies a recipient address.
type Reputation string

const (
	RepSafe       Reputation = "safe"
	RepSuspicious Reputation = "suspicious"
	RepMalicious  Reputation = "malicious"
	RepUnknown    Reputation = "unknown"
)

// requiredParams maps each monetary action to the parameters it cannot
// run without. This table is the closed definition of "monetary".
var requiredParams = map[string][]string{
	model.ActionExecuteTransaction: {"to", "value"},
	model.ActionDeployContract:     {"bytecode"},
	model.ActionCallContract:       {"to", "data"},
	model.ActionSignMessage:        {"message"},
	model.ActionApproveToken:       {"token", "spender", "amount"},
	model.ActionTransferToken:      {"token", "to", "amount"},
}

// Guard evaluates monetary actions against address reputation, contract
// call safety, and the configured value ceiling.
type Guard struct {
	malicious        []string
	suspiciousPrefix string
	trustedPrefix    string
	maxValue         float64
}

// New builds a Guard from config.
func New(cfg *config.Config) *Guard {
	return &Guard{
		malicious:        cfg.Addresses.Malicious,
		suspiciousPrefix: cfg.Addresses.SuspiciousPrefix,
		trustedPrefix:    cfg.Addresses.TrustedPrefix,
		maxValue:         cfg.Thresholds.MaxTransferValue,
	}
}

// IsMonetary reports whether the action name is in the monetary set.
func IsMonetary(name string) bool {
	_, ok := requiredParams[name]
	return ok
}

// Evaluate runs the check ladder. Order (must not be changed):
//  1. non-monetary actions approve trivially
//  2. required parameters per action name
//  3. recipient address reputation
//  4. contract call-data safety (fail-closed for unverifiable contracts)
//  5. value ceiling
func (g *Guard) Evaluate(a model.CandidateAction) model.Verdict {
	if !IsMonetary(a.Name) {
		return model.Verdict{Approved: true, Reason: "not a monetary action"}
	}

	if v := ValidateParams(a); !v.Approved {
		return v
	}

	to := model.Str(a.Params, "to")
	if to != "" {
		switch rep := g.ClassifyAddress(to); rep {
		case RepMalicious:
			return reject(fmt.Sprintf("recipient %s is a known malicious address", to))
		case RepSuspicious:
			return reject(fmt.Sprintf("recipient %s matches a suspicious address pattern", to))
		}
	}

	if data := model.Str(a.Params, "data"); len(data) > len("0x") {
		if v := g.checkContractData(to, data); !v.Approved {
			return v
		}
	}

	if model.Has(a.Params, "value") {
		if v := model.Num(a.Params, "value"); v > g.maxValue {
			return reject(fmt.Sprintf("value %v exceeds the maximum allowed %v", v, g.maxValue))
		}
	}

	return model.Verdict{Approved: true, Reason: "monetary action passed all safety checks"}
}

// ValidateParams checks the required-parameter table for the action.
// Names outside the table are rejected outright rather than erroring.
func ValidateParams(a model.CandidateAction) model.Verdict {
	required, ok := requiredParams[a.Name]
	if !ok {
		return reject(fmt.Sprintf("unknown blockchain action %q", a.Name))
	}

	var missing []string
	for _, p := range required {
		if !model.Has(a.Params, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return reject(fmt.Sprintf("%s is missing required parameters: %s",
			a.Name, strings.Join(missing, ", ")))
	}

	return model.Verdict{Approved: true}
}

// ClassifyAddress assigns a reputation from the known-bad list and
// prefix heuristics.
func (g *Guard) ClassifyAddress(addr string) Reputation {
	for _, bad := range g.malicious {
		if addr == bad {
			return RepMalicious
		}
	}
	if g.suspiciousPrefix != "" && strings.HasPrefix(addr, g.suspiciousPrefix) {
		return RepSuspicious
	}
	if g.trustedPrefix != "" && strings.HasPrefix(addr, g.trustedPrefix) {
		return RepSafe
	}
	return RepUnknown
}

// checkContractData gates contract interactions. Trusted contracts are
// accepted; data mentioning selfdestruct is dangerous; everything else
// is rejected as unverifiable by default.
func (g *Guard) checkContractData(to, data string) model.Verdict {
	if g.trustedPrefix != "" && strings.HasPrefix(to, g.trustedPrefix) {
		return model.Verdict{Approved: true}
	}
	if strings.Contains(strings.ToLower(data), "selfdestruct") {
		return reject("call data contains a selfdestruct pattern")
	}
	return reject(fmt.Sprintf("contract %s cannot be verified; refusing by default", to))
}

func reject(reason string) model.Verdict {
	return model.Verdict{Approved: false, Reason: reason}
}
