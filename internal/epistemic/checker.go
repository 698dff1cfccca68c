// Package epistemic flags candidate actions whose outcome the system
// cannot be confident about. Orthogonal to the ethical suite: an action
// can be ethically approved yet epistemically uncertain.
package epistemic

import (
	"fmt"
	"unicode/utf8"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

// Checker applies category-specific uncertainty heuristics.
type Checker struct {
	highValue    float64
	longResponse int
}

// NewChecker builds a Checker from config thresholds.
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{
		highValue:    cfg.Thresholds.HighValue,
		longResponse: cfg.Thresholds.LongResponse,
	}
}

// Check flags the action as uncertain under the fixed heuristics:
// high-value transfers and overlong generated responses.
func (c *Checker) Check(a model.CandidateAction) model.UncertaintyFlag {
	switch a.Name {
	case model.ActionExecuteTransaction:
		if v := model.Num(a.Params, "value"); v > c.highValue {
			return model.UncertaintyFlag{
				Uncertain: true,
				Reason:    fmt.Sprintf("transfer of %v exceeds the high-value threshold of %v", v, c.highValue),
			}
		}
	case model.ActionRespondToMessage:
		// Character limit, not bytes: multi-byte content counts by rune.
		if n := utf8.RuneCountInString(model.Str(a.Params, "content")); n > c.longResponse {
			return model.UncertaintyFlag{
				Uncertain: true,
				Reason:    fmt.Sprintf("generated response of %d characters exceeds the %d character limit", n, c.longResponse),
			}
		}
	}
	return model.UncertaintyFlag{}
}
