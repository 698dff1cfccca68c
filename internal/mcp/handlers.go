package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ndelias/ethos/internal/model"
)

// --- Input/Output types ---

// EvaluateInput defines parameters for the ethos_evaluate tool.
type EvaluateInput struct {
	Record  map[string]any `json:"record" jsonschema:"raw record to evaluate"`
	Context map[string]any `json:"context,omitempty" jsonschema:"previousTransactions and conversationHistory"`
}

// ActionItem is one candidate action in an evaluation result.
type ActionItem struct {
	Action        string         `json:"action"`
	Params        map[string]any `json:"params,omitempty"`
	Justification string         `json:"justification,omitempty"`
}

// EvaluateOutput contains the full evaluation outcome.
type EvaluateOutput struct {
	RunID         string       `json:"run_id"`
	Category      string       `json:"category"`
	Approved      []ActionItem `json:"approved"`
	Rejected      []ActionItem `json:"rejected"`
	Confidence    float64      `json:"confidence"`
	Limitations   []string     `json:"limitations,omitempty"`
	Uncertainties []string     `json:"uncertainties,omitempty"`
	Deferred      bool         `json:"deferred"`
	Reason        string       `json:"reason"`
	Explanation   string       `json:"explanation"`
	ReviewKey     string       `json:"review_key,omitempty"`
}

// ExplainInput defines parameters for the ethos_explain tool.
type ExplainInput struct {
	Record  map[string]any `json:"record" jsonschema:"raw record to evaluate"`
	Context map[string]any `json:"context,omitempty" jsonschema:"previousTransactions and conversationHistory"`
}

// ExplainOutput contains the rendered explanation.
type ExplainOutput struct {
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// CheckActionInput defines parameters for the ethos_check_action tool.
type CheckActionInput struct {
	Action string         `json:"action" jsonschema:"action name (executeTransaction/deployContract/callContract/signMessage/approveToken/transferToken)"`
	Params map[string]any `json:"params,omitempty" jsonschema:"action parameters"`
}

// CheckActionOutput contains the safety gate verdict.
type CheckActionOutput struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// ApproveInput defines parameters for the ethos_approve tool.
type ApproveInput struct {
	Key      string `json:"key" jsonschema:"review key from a deferred evaluation"`
	Duration string `json:"duration,omitempty" jsonschema:"approval duration (e.g. 5m), omit for one-time approval"`
}

// ApproveOutput confirms the approval.
type ApproveOutput struct {
	Key      string `json:"key"`
	Status   string `json:"status"`
	Duration string `json:"duration,omitempty"`
}

// PendingInput is empty — no parameters needed.
type PendingInput struct{}

// PendingOutput lists all pending reviews.
type PendingOutput struct {
	Reviews []PendingItem `json:"reviews"`
}

// PendingItem describes a single deferred decision.
type PendingItem struct {
	Key        string  `json:"key"`
	Status     string  `json:"status"`
	RunID      string  `json:"run_id"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	CreatedAt  string  `json:"created_at"`
}

// --- Handlers ---

func (s *Server) handleEvaluate(ctx context.Context, req *mcpsdk.CallToolRequest, input EvaluateInput) (*mcpsdk.CallToolResult, EvaluateOutput, error) {
	pipe, threshold, configHash, dispatcher := s.snapshot()

	runID := model.NewRunID()
	recordCtx := model.ContextFromMap(input.Context)

	critique, err := pipe.Evaluate(input.Record, recordCtx, nil)
	if err != nil {
		return nil, EvaluateOutput{}, err
	}
	decision := pipe.Decide(critique, threshold)

	s.recordAudit(runID, critique, decision, configHash)
	s.recordHistory(ctx, runID, critique, decision, configHash)
	s.dispatchAlert(dispatcher, runID, critique, decision, configHash)

	out := EvaluateOutput{
		RunID:         runID,
		Category:      string(critique.Category),
		Approved:      toActionItems(critique.Approved),
		Rejected:      toActionItems(critique.Rejected),
		Confidence:    critique.Confidence,
		Limitations:   critique.Limitations,
		Uncertainties: critique.Uncertainties,
		Deferred:      decision.ShouldDefer,
		Reason:        decision.Reason,
		Explanation:   pipe.Explain(critique),
	}

	if decision.ShouldDefer {
		if err := s.reviews.Request(runID, decision.Reason, runID, string(critique.Category), critique.Confidence); err == nil {
			out.ReviewKey = runID
		}
	}

	return nil, out, nil
}

func (s *Server) handleExplain(ctx context.Context, req *mcpsdk.CallToolRequest, input ExplainInput) (*mcpsdk.CallToolResult, ExplainOutput, error) {
	pipe, _, _, _ := s.snapshot()

	critique, err := pipe.Evaluate(input.Record, model.ContextFromMap(input.Context), nil)
	if err != nil {
		return nil, ExplainOutput{}, err
	}

	return nil, ExplainOutput{
		Category:    string(critique.Category),
		Confidence:  critique.Confidence,
		Explanation: pipe.Explain(critique),
	}, nil
}

func (s *Server) handleCheckAction(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckActionInput) (*mcpsdk.CallToolResult, CheckActionOutput, error) {
	if input.Action == "" {
		return nil, CheckActionOutput{}, fmt.Errorf("action name is required")
	}
	pipe, _, _, _ := s.snapshot()

	verdict := pipe.CheckAction(model.CandidateAction{
		Name:   input.Action,
		Params: input.Params,
	})

	out := CheckActionOutput{
		Approved: verdict.Approved,
		Reason:   verdict.Reason,
	}
	if !verdict.Approved {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleApprove(ctx context.Context, req *mcpsdk.CallToolRequest, input ApproveInput) (*mcpsdk.CallToolResult, ApproveOutput, error) {
	var duration time.Duration
	if input.Duration != "" {
		var err error
		duration, err = time.ParseDuration(input.Duration)
		if err != nil {
			return nil, ApproveOutput{}, fmt.Errorf("invalid duration %q: %w", input.Duration, err)
		}
	}

	if err := s.reviews.Approve(input.Key, duration); err != nil {
		return nil, ApproveOutput{}, err
	}

	out := ApproveOutput{
		Key:    input.Key,
		Status: "approved",
	}
	if duration > 0 {
		out.Duration = duration.String()
	}
	return nil, out, nil
}

func (s *Server) handlePending(ctx context.Context, req *mcpsdk.CallToolRequest, input PendingInput) (*mcpsdk.CallToolResult, PendingOutput, error) {
	list, err := s.reviews.List()
	if err != nil {
		return nil, PendingOutput{}, err
	}

	items := make([]PendingItem, len(list))
	for i, r := range list {
		items[i] = PendingItem{
			Key:        r.Key,
			Status:     string(r.Status),
			RunID:      r.RunID,
			Category:   r.Category,
			Confidence: r.Confidence,
			Reason:     r.Reason,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		}
	}

	return nil, PendingOutput{Reviews: items}, nil
}

func toActionItems(actions []model.CandidateAction) []ActionItem {
	items := make([]ActionItem, len(actions))
	for i, a := range actions {
		items[i] = ActionItem{
			Action:        a.Name,
			Params:        a.Params,
			Justification: a.Justification,
		}
	}
	return items
}
