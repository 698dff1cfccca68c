package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/audit"
	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/history"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/pipeline"
	"github.com/ndelias/ethos/internal/review"
)

var (
	evalConfig    string
	evalContext   string
	evalThreshold float64
	evalFormat    string
	evalAuditLog  string
	evalHistory   string
	evalReviewDir string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evalConfig, "config", "", "Path to config YAML (default ~/.ethos/config.yaml)")
	evaluateCmd.Flags().StringVar(&evalContext, "context", "", "Context JSON (previousTransactions, conversationHistory)")
	evaluateCmd.Flags().Float64Var(&evalThreshold, "threshold", 0, "Confidence threshold override (0 = use config)")
	evaluateCmd.Flags().StringVarP(&evalFormat, "format", "f", "text", "Output format (text|json)")
	evaluateCmd.Flags().StringVar(&evalAuditLog, "audit-log", "", "Append the decision to this hash-chained JSONL log")
	evaluateCmd.Flags().StringVar(&evalHistory, "history", "", "Record the decision in this SQLite history database")
	evaluateCmd.Flags().StringVar(&evalReviewDir, "review-dir", "", "Review store directory (default ~/.ethos/pending)")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [record-json]",
	Short: "Evaluate a record through the full pipeline",
	Long: "Classifies the record, proposes actions, and critiques them against the\n" +
		"ethical and epistemic rules. Reads the record as a JSON argument, or from\n" +
		"stdin when no argument is given.\n\n" +
		"Exit code 0 when the decision proceeds, 2 when it defers to a human.",
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

// evaluateResult is the JSON output shape of the evaluate command.
type evaluateResult struct {
	RunID         string                  `json:"run_id"`
	Category      string                  `json:"category"`
	Approved      []model.CandidateAction `json:"approved"`
	Rejected      []model.CandidateAction `json:"rejected"`
	Confidence    float64                 `json:"confidence"`
	Limitations   []string                `json:"limitations,omitempty"`
	Uncertainties []string                `json:"uncertainties,omitempty"`
	Deferred      bool                    `json:"deferred"`
	Reason        string                  `json:"reason"`
	ReviewKey     string                  `json:"review_key,omitempty"`
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	raw, err := readRecord(args)
	if err != nil {
		return err
	}

	var recordCtx *model.Context
	if evalContext != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(evalContext), &m); err != nil {
			return fmt.Errorf("invalid context JSON: %w", err)
		}
		recordCtx = model.ContextFromMap(m)
	}

	cfg, configHash, err := config.LoadWithHash(evalConfig)
	if err != nil {
		return err
	}

	threshold := evalThreshold
	if threshold == 0 {
		threshold = cfg.Thresholds.Confidence
	}

	p := pipeline.New(cfg)
	runID := model.NewRunID()

	critique, err := p.Evaluate(raw, recordCtx, nil)
	if err != nil {
		return err
	}
	decision := p.Decide(critique, threshold)

	if evalAuditLog != "" {
		log, err := audit.Open(evalAuditLog)
		if err != nil {
			return err
		}
		defer log.Close()
		if err := log.Record(audit.FromEvaluation(runID, critique, decision, configHash)); err != nil {
			return err
		}
	}

	if evalHistory != "" {
		if err := recordEvalHistory(runID, critique, decision, configHash); err != nil {
			return err
		}
	}

	result := evaluateResult{
		RunID:         runID,
		Category:      string(critique.Category),
		Approved:      critique.Approved,
		Rejected:      critique.Rejected,
		Confidence:    critique.Confidence,
		Limitations:   critique.Limitations,
		Uncertainties: critique.Uncertainties,
		Deferred:      decision.ShouldDefer,
		Reason:        decision.Reason,
	}

	if decision.ShouldDefer {
		dir := evalReviewDir
		if dir == "" {
			dir = review.DefaultDir()
		}
		store, err := review.NewStore(dir)
		if err != nil {
			return err
		}
		if err := store.Request(runID, decision.Reason, runID, string(critique.Category), critique.Confidence); err != nil {
			return err
		}
		result.ReviewKey = runID
	}

	switch evalFormat {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		fmt.Print(p.Explain(critique))
		fmt.Println()
		if decision.ShouldDefer {
			fmt.Printf("DEFER: %s\n", decision.Reason)
			if result.ReviewKey != "" {
				fmt.Printf("Review key: %s\n", result.ReviewKey)
			}
		} else {
			fmt.Printf("PROCEED: %s\n", decision.Reason)
		}
	}

	if decision.ShouldDefer {
		os.Exit(2)
	}
	return nil
}

func recordEvalHistory(runID string, c model.Critique, d model.DeferralDecision, configHash string) error {
	hist, err := history.Open(evalHistory)
	if err != nil {
		return err
	}
	defer hist.Close()

	approved := make([]string, 0, len(c.Approved))
	for _, a := range c.Approved {
		approved = append(approved, a.Name)
	}
	rejected := make([]string, 0, len(c.Rejected))
	for _, a := range c.Rejected {
		rejected = append(rejected, a.Name)
	}

	return hist.Insert(context.Background(), history.Record{
		RunID:      runID,
		Category:   string(c.Category),
		Approved:   approved,
		Rejected:   rejected,
		Confidence: c.Confidence,
		Deferred:   d.ShouldDefer,
		Reason:     d.Reason,
		ConfigHash: configHash,
	})
}

// readRecord parses the record from the argument or stdin.
func readRecord(args []string) (map[string]any, error) {
	var data []byte
	if len(args) == 1 {
		data = []byte(args[0])
	} else {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	return raw, nil
}
