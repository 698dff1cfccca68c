package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/audit"
)

var (
	logRunID  string
	logFrom   string
	logTo     string
	logFormat string
)

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logRunID, "run", "", "Run ID to replay (required)")
	logCmd.Flags().StringVar(&logFrom, "from", "", "Start of time range (RFC3339)")
	logCmd.Flags().StringVar(&logTo, "to", "", "End of time range (RFC3339)")
	logCmd.Flags().StringVar(&logFormat, "format", "text", "Output format: text or json")
	logCmd.MarkFlagRequired("run")
}

var logCmd = &cobra.Command{
	Use:   "log <path>",
	Short: "Replay a run's decision log entries as a timeline",
	Long:  "Reads the JSONL decision log, selects the entries for one run with\noptional time-range filters, and renders them as a timeline or JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	filter := audit.ReplayFilter{RunID: logRunID}

	if logFrom != "" {
		t, err := time.Parse(time.RFC3339, logFrom)
		if err != nil {
			return fmt.Errorf("parse --from: %w", err)
		}
		filter.From = t
	}
	if logTo != "" {
		t, err := time.Parse(time.RFC3339, logTo)
		if err != nil {
			return fmt.Errorf("parse --to: %w", err)
		}
		filter.To = t
	}

	result, err := audit.Replay(args[0], filter)
	if err != nil {
		return err
	}

	if logFormat == "json" {
		out, err := audit.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Print(audit.FormatTimeline(result))
	return nil
}
