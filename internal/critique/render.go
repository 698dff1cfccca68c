package critique

import (
	"fmt"
	"strings"

	"github.com/ndelias/ethos/internal/model"
)

// Render formats a critique as human-readable text. Pure formatting:
// no side effects, no errors.
func Render(c model.Critique) string {
	var b strings.Builder

	if len(c.Approved) > 0 {
		b.WriteString("Approved actions:\n")
		for _, a := range c.Approved {
			fmt.Fprintf(&b, "  - %s: %s\n", a.Name, a.Justification)
		}
	} else {
		b.WriteString("No actions approved.\n")
	}

	for _, a := range c.Rejected {
		fmt.Fprintf(&b, "  - %s: rejected due to ethical constraints\n", a.Name)
	}

	if c.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(c.Explanation)
		b.WriteString("\n")
	}

	if len(c.Limitations) > 0 {
		b.WriteString("\nLimitations:\n")
		for _, l := range c.Limitations {
			fmt.Fprintf(&b, "  - %s\n", l)
		}
	}

	if len(c.Uncertainties) > 0 {
		b.WriteString("\nUncertainties:\n")
		for _, u := range c.Uncertainties {
			fmt.Fprintf(&b, "  - %s\n", u)
		}
	}

	return b.String()
}
