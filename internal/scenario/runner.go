package scenario

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/pipeline"
)

// Run evaluates all cases in a scenario against the given config.
// Cases are independent; each is a fresh evaluation.
func Run(s *Scenario, cfg *config.Config) *RunResult {
	if cfg == nil {
		cfg = config.Default()
	}
	p := pipeline.New(cfg)

	threshold := s.Threshold
	if threshold == 0 {
		threshold = cfg.Thresholds.Confidence
	}

	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		ctx := model.ContextFromMap(c.Context)

		cr := CaseResult{
			Index:    i + 1,
			Expected: strings.ToLower(c.Expect),
		}

		critique, err := p.Evaluate(c.Input, ctx, nil)
		if err != nil {
			cr.Actual = "error"
			cr.Reason = err.Error()
			result.Failed++
			result.Cases = append(result.Cases, cr)
			continue
		}

		decision := p.Decide(critique, threshold)
		cr.Category = string(critique.Category)
		cr.Confidence = critique.Confidence
		cr.Reason = decision.Reason
		if decision.ShouldDefer {
			cr.Actual = "defer"
		} else {
			cr.Actual = "proceed"
		}

		cr.Passed = cr.Actual == cr.Expected &&
			(c.Category == "" || c.Category == cr.Category) &&
			(c.MinConfidence == nil || critique.Confidence >= *c.MinConfidence) &&
			rejectedMatch(c.Rejected, critique.Rejected)

		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}

		result.Cases = append(result.Cases, cr)
	}

	return result
}

// rejectedMatch checks that every expected rejection is present.
func rejectedMatch(expected []string, actual []model.CandidateAction) bool {
	names := make([]string, 0, len(actual))
	for _, a := range actual {
		names = append(names, a.Name)
	}
	for _, want := range expected {
		if !slices.Contains(names, want) {
			return false
		}
	}
	return true
}

// LoadAndRun loads a scenario YAML file, loads the config, and runs.
func LoadAndRun(path, configPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	result := Run(&s, cfg)
	result.File = path

	return result, nil
}
