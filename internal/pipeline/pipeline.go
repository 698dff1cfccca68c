// Package pipeline wires the four evaluation stages together:
// classification → normalization+enrichment → proposal → critique.
// Every stage is a pure function of its input; concurrent invocations
// need no coordination.
package pipeline

import (
	"fmt"
	"time"

	"github.com/ndelias/ethos/internal/boundary"
	"github.com/ndelias/ethos/internal/classify"
	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/critique"
	"github.com/ndelias/ethos/internal/enrich"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/normalize"
	"github.com/ndelias/ethos/internal/propose"
	"github.com/ndelias/ethos/internal/txguard"
)

// Options configures one evaluation run.
type Options struct {
	// ConfidenceThreshold is the deferral boundary used when the caller
	// hands the run's critique to Decide. Zero means the default of 0.7.
	ConfidenceThreshold float64

	// EthicalConstraints is a set of named constraint toggles reserved
	// for future checks. It is carried and read but gates nothing yet.
	EthicalConstraints map[string]bool

	// MaxProcessingTime is an advisory wall-clock budget. Overruns are
	// observed (reported through OnOverrun), never enforced: the
	// pipeline does not cancel mid-run.
	MaxProcessingTime time.Duration
}

func (o *Options) normalized() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

// Failure wraps an unexpected panic raised by any stage. The caller
// receives no partial result; whether the failure itself becomes a
// forced deferral is the caller's decision.
type Failure struct {
	cause any
}

func (f *Failure) Error() string {
	return fmt.Sprintf("pipeline: unexpected failure: %v", f.cause)
}

// Unwrap exposes the original error when the panic value was one.
func (f *Failure) Unwrap() error {
	if err, ok := f.cause.(error); ok {
		return err
	}
	return nil
}

// Pipeline is a reusable, concurrency-safe evaluator. All tunables are
// fixed at construction; no stage reads process-wide state.
type Pipeline struct {
	enricher *enrich.Enricher
	proposer *propose.Proposer
	agg      *critique.Aggregator
	guard    *txguard.Guard

	// OnOverrun, when set, is called after a run whose elapsed time
	// exceeded the advisory budget.
	OnOverrun func(elapsed, budget time.Duration)
}

// New builds a Pipeline from config. Nil config means defaults.
func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{
		enricher: enrich.New(cfg),
		proposer: propose.New(cfg),
		agg:      critique.NewAggregator(cfg),
		guard:    txguard.New(cfg),
	}
}

// Evaluate runs the full pipeline on a raw event. The context mapping is
// optional cross-call history and is treated as read-only. Stages never
// error by design; only an unexpected panic surfaces, wrapped in a
// single *Failure.
func (p *Pipeline) Evaluate(raw any, ctx *model.Context, opts *Options) (result model.Critique, err error) {
	o := opts.normalized()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = model.Critique{}
			err = &Failure{cause: r}
			return
		}
		if p.OnOverrun != nil && o.MaxProcessingTime > 0 {
			if elapsed := time.Since(start); elapsed > o.MaxProcessingTime {
				p.OnOverrun(elapsed, o.MaxProcessingTime)
			}
		}
	}()

	cat := classify.Classify(raw)
	rec := normalize.Normalize(raw, cat, ctx)
	rec = p.enricher.Enrich(rec)
	proposal := p.proposer.Propose(rec)

	return p.agg.Critique(proposal, cat), nil
}

// Decide derives the deferral decision for a prior evaluation. Callers
// that built the run with an explicit Options.ConfidenceThreshold pass
// it here; zero falls back to the default of 0.7.
func (p *Pipeline) Decide(c model.Critique, threshold float64) model.DeferralDecision {
	if threshold == 0 {
		threshold = boundary.DefaultThreshold
	}
	return boundary.Decide(c, threshold)
}

// Explain renders a critique as human-readable text.
func (p *Pipeline) Explain(c model.Critique) string {
	return critique.Render(c)
}

// CheckAction runs the monetary safety gate on a single candidate
// action, independent of the full pipeline.
func (p *Pipeline) CheckAction(a model.CandidateAction) model.Verdict {
	return p.guard.Evaluate(a)
}
