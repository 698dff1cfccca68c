// Package critique aggregates per-action verdicts into one
// confidence-scored, explainable result.
package critique

import (
	"fmt"
	"strings"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/epistemic"
	"github.com/ndelias/ethos/internal/ethics"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/propose"
)

// Confidence penalties. Rejections weigh double uncertainties; approved
// but expensive executions still erode confidence.
const (
	rejectionPenalty   = 0.2
	uncertaintyPenalty = 0.1
	expensivePenalty   = 0.1
)

// Aggregator runs every candidate action through the ethical suite and
// the epistemic checker and folds the outcomes into a Critique.
type Aggregator struct {
	ethics    *ethics.Suite
	epistemic *epistemic.Checker
	highValue float64
}

// NewAggregator builds an Aggregator from config.
func NewAggregator(cfg *config.Config) *Aggregator {
	return &Aggregator{
		ethics:    ethics.NewSuite(cfg),
		epistemic: epistemic.NewChecker(cfg),
		highValue: cfg.Thresholds.HighValue,
	}
}

// Critique evaluates the proposal. Approved and rejected partitions
// preserve proposer order; every rejection reason lands in Limitations
// and every uncertainty in Uncertainties. Confidence starts at 1.0 and
// is clamped to [0, 1].
func (ag *Aggregator) Critique(p propose.Proposal, cat model.Category) model.Critique {
	c := model.Critique{
		Category:   cat,
		Confidence: 1.0,
	}

	var lines []string
	for _, a := range p.Actions {
		verdict := ag.ethics.Evaluate(a)
		flag := ag.epistemic.Check(a)

		if flag.Uncertain {
			c.Uncertainties = append(c.Uncertainties, flag.Reason)
			c.Confidence -= uncertaintyPenalty
		}

		if verdict.Approved {
			c.Approved = append(c.Approved, a)
			if a.Name == model.ActionExecuteTransaction && model.Num(a.Params, "value") > ag.highValue {
				c.Confidence -= expensivePenalty
			}
			lines = append(lines, fmt.Sprintf("Approved: %s (%s)", a.Name, verdict.Reason))
		} else {
			c.Rejected = append(c.Rejected, a)
			c.Limitations = append(c.Limitations, verdict.Reason)
			c.Confidence -= rejectionPenalty
			lines = append(lines, fmt.Sprintf("Rejected: %s (%s)", a.Name, verdict.Reason))
		}
	}

	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 1 {
		c.Confidence = 1
	}

	c.Explanation = buildExplanation(p.Reasoning, lines, c.Confidence)
	return c
}

func buildExplanation(reasoning string, lines []string, confidence float64) string {
	var b strings.Builder
	if reasoning != "" {
		b.WriteString(reasoning)
		b.WriteString("\n")
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Confidence: %.2f", confidence)
	return b.String()
}
