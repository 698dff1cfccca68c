package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/mcp"
)

var (
	mcpConfig    string
	mcpReviewDir string
	mcpHistory   string
	mcpAuditLog  string
	mcpThreshold float64
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpConfig, "config", "", "Path to config file (watched for changes)")
	mcpCmd.Flags().StringVar(&mcpReviewDir, "review-dir", "", "Directory for pending reviews (default ~/.ethos/pending)")
	mcpCmd.Flags().StringVar(&mcpHistory, "history", "", "Path to evaluation history database")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to hash-chained decision log")
	mcpCmd.Flags().Float64Var(&mcpThreshold, "threshold", 0, "Confidence threshold override")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long:  "Starts a Model Context Protocol server exposing evaluation tools over\nstdin/stdout. The config file is watched and reloaded on change.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := mcp.New(mcp.Config{
		ConfigPath:   mcpConfig,
		ReviewDir:    mcpReviewDir,
		HistoryPath:  mcpHistory,
		AuditLogPath: mcpAuditLog,
		Threshold:    mcpThreshold,
	})
	if err != nil {
		return fmt.Errorf("start mcp server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if mcpConfig != "" {
		reloader, err := mcp.NewReloader(srv, []string{mcpConfig})
		if err != nil {
			fmt.Fprintf(os.Stderr, "config watch disabled: %v\n", err)
		} else {
			go reloader.Run(ctx)
		}
	}

	return srv.Run(ctx)
}
