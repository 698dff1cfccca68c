// Package boundary decides whether a critique stays within the system's
// epistemic boundaries or must be handed to a human.
package boundary

import (
	"fmt"
	"strings"

	"github.com/ndelias/ethos/internal/model"
)

// DefaultThreshold is the confidence below which results defer to a
// human when the caller supplies no threshold.
const DefaultThreshold = 0.7

// Decide derives a deferral decision from a critique and a confidence
// threshold. Conditions are checked in fixed priority and only the first
// matching reason is reported, even when several hold:
//  1. confidence below threshold
//  2. limitations present
//  3. uncertainties present
//  4. otherwise proceed
func Decide(c model.Critique, threshold float64) model.DeferralDecision {
	switch {
	case c.Confidence < threshold:
		return model.DeferralDecision{
			ShouldDefer: true,
			Reason:      fmt.Sprintf("confidence %.2f is below the threshold %.2f", c.Confidence, threshold),
		}
	case len(c.Limitations) > 0:
		return model.DeferralDecision{
			ShouldDefer: true,
			Reason:      "ethical limitations: " + strings.Join(c.Limitations, "; "),
		}
	case len(c.Uncertainties) > 0:
		return model.DeferralDecision{
			ShouldDefer: true,
			Reason:      "unresolved uncertainties: " + strings.Join(c.Uncertainties, "; "),
		}
	default:
		return model.DeferralDecision{
			ShouldDefer: false,
			Reason:      "within epistemic boundaries",
		}
	}
}
