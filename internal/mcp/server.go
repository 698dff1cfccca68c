package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ndelias/ethos/internal/alert"
	"github.com/ndelias/ethos/internal/audit"
	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/history"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/pipeline"
	"github.com/ndelias/ethos/internal/review"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath   string
	ReviewDir    string
	HistoryPath  string
	AuditLogPath string
	Threshold    float64
}

// Server exposes the evaluation pipeline over MCP stdio transport.
type Server struct {
	mcpServer *mcpsdk.Server

	// mu guards the reloadable evaluation state below.
	mu         sync.Mutex
	pipe       *pipeline.Pipeline
	appCfg     *config.Config
	configHash string
	threshold  float64
	dispatcher *alert.Dispatcher

	configPath        string
	explicitThreshold bool
	reviews           *review.Store
	auditLog          *audit.Log
	hist              *history.Store
}

// New creates an MCP server with loaded config and registered tools.
func New(cfg Config) (*Server, error) {
	appCfg, hash, err := config.LoadWithHash(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	reviewDir := cfg.ReviewDir
	if reviewDir == "" {
		reviewDir = review.DefaultDir()
	}
	reviews, err := review.NewStore(reviewDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create review store: %w", err)
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open decision log: %w", err)
		}
	}

	var hist *history.Store
	if cfg.HistoryPath != "" {
		hist, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = appCfg.Thresholds.Confidence
	}

	s := &Server{
		pipe:              pipeline.New(appCfg),
		appCfg:            appCfg,
		configHash:        hash,
		threshold:         threshold,
		dispatcher:        alert.NewDispatcher(appCfg.Alerts),
		configPath:        cfg.ConfigPath,
		explicitThreshold: cfg.Threshold != 0,
		reviews:           reviews,
		auditLog:          auditLog,
		hist:              hist,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "ethos",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the decision log and history store if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		if err := s.auditLog.Close(); err != nil {
			return err
		}
	}
	if s.hist != nil {
		return s.hist.Close()
	}
	return nil
}

// ReloadConfig re-reads the config file and swaps in a fresh pipeline.
// An explicit threshold given at construction survives reloads.
func (s *Server) ReloadConfig() error {
	appCfg, hash, err := config.LoadWithHash(s.configPath)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appCfg = appCfg
	s.configHash = hash
	s.pipe = pipeline.New(appCfg)
	s.dispatcher = alert.NewDispatcher(appCfg.Alerts)
	if !s.explicitThreshold {
		s.threshold = appCfg.Thresholds.Confidence
	}
	return nil
}

// snapshot returns the current evaluation state under the lock, so a
// concurrent reload cannot tear an in-flight evaluation.
func (s *Server) snapshot() (*pipeline.Pipeline, float64, string, *alert.Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipe, s.threshold, s.configHash, s.dispatcher
}

func (s *Server) recordAudit(runID string, c model.Critique, d model.DeferralDecision, configHash string) {
	if s.auditLog != nil {
		s.auditLog.Record(audit.FromEvaluation(runID, c, d, configHash))
	}
}

func (s *Server) recordHistory(ctx context.Context, runID string, c model.Critique, d model.DeferralDecision, configHash string) {
	if s.hist == nil {
		return
	}
	approved := make([]string, 0, len(c.Approved))
	for _, a := range c.Approved {
		approved = append(approved, a.Name)
	}
	rejected := make([]string, 0, len(c.Rejected))
	for _, a := range c.Rejected {
		rejected = append(rejected, a.Name)
	}
	s.hist.Insert(ctx, history.Record{
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

func (s *Server) dispatchAlert(dispatcher *alert.Dispatcher, runID string, c model.Critique, d model.DeferralDecision, configHash string) {
	if dispatcher == nil {
		return
	}
	decision := "proceed"
	if d.ShouldDefer {
		decision = "defer"
	}
	event := alert.Event{
		Timestamp:  time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		RunID:      runID,
		Category:   string(c.Category),
		Decision:   decision,
		Reason:     d.Reason,
		Confidence: c.Confidence,
		Rejected:   len(c.Rejected),
		ConfigHash: configHash,
	}
	if len(c.Rejected) > 0 {
		event.Type = "rejection"
	}
	dispatcher.Dispatch(event)
}

// registerTools adds all ethos tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ethos_evaluate",
		Description: "Evaluate a record (transaction, message, event, or user input) through the full pipeline. Returns approved and rejected actions, confidence, and whether the decision defers to a human.",
	}, s.handleEvaluate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ethos_explain",
		Description: "Evaluate a record and return a human-readable explanation of the outcome without persisting anything.",
	}, s.handleExplain)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ethos_check_action",
		Description: "Check a single blockchain action against the monetary safety gate without executing it (dry-run).",
	}, s.handleCheckAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ethos_approve",
		Description: "Approve a deferred decision. Use the review_key returned by a deferred evaluation.",
	}, s.handleApprove)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ethos_pending",
		Description: "List all decisions awaiting human review.",
	}, s.handlePending)
}
