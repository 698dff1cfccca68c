package ethos

import (
	"fmt"
	"sync"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/pipeline"
	"github.com/ndelias/ethos/internal/review"
	"github.com/ndelias/ethos/internal/txguard"
)

// Client holds the evaluation pipeline for in-process use. Thread-safe
// for concurrent calls.
type Client struct {
	cfg       clientConfig
	pipe      *pipeline.Pipeline
	guard     *txguard.Guard
	threshold float64
	reviews   *review.Store
	mu        sync.Mutex
}

// New creates a Client with the given options. A missing config file
// falls back to defaults.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	appCfg, err := config.Load(cfg.configPath)
	if err != nil {
		return nil, fmt.Errorf("ethos: failed to load config: %w", err)
	}

	threshold := cfg.threshold
	if threshold == 0 {
		threshold = appCfg.Thresholds.Confidence
	}

	dir := cfg.reviewDir
	if dir == "" {
		dir = review.DefaultDir()
	}
	reviews, err := review.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("ethos: failed to create review store: %w", err)
	}
	reviews.Cleanup()

	return &Client{
		cfg:       cfg,
		pipe:      pipeline.New(appCfg),
		guard:     txguard.New(appCfg),
		threshold: threshold,
		reviews:   reviews,
	}, nil
}

// Evaluate runs the full pipeline over a record with optional context
// (previousTransactions, conversationHistory).
func (c *Client) Evaluate(record map[string]any, context map[string]any) (Result, error) {
	var recordCtx *model.Context
	if context != nil {
		recordCtx = model.ContextFromMap(context)
	}

	critique, err := c.pipe.Evaluate(record, recordCtx, nil)
	if err != nil {
		return Result{}, err
	}
	decision := c.pipe.Decide(critique, c.threshold)

	return toResult(model.NewRunID(), critique, decision), nil
}

// CheckAction evaluates one candidate action against the transaction
// guard without running the pipeline.
func (c *Client) CheckAction(name string, params map[string]any) (bool, string) {
	verdict := c.guard.Evaluate(model.CandidateAction{Name: name, Params: params})
	return verdict.Approved, verdict.Reason
}
