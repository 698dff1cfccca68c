package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/history"
)

var (
	historyDB    string
	historyLimit int
	historyRun   string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.PersistentFlags().StringVar(&historyDB, "db", "", "Path to evaluation history database (default ~/.ethos/history.db)")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of records to show")
	historyListCmd.Flags().StringVar(&historyRun, "run", "", "Show records for one run in order")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Evaluation history operations",
	Long:  "Commands for querying the SQLite evaluation history.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent evaluations",
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate evaluation statistics",
	RunE:  runHistoryStats,
}

func historyPath() string {
	if historyDB != "" {
		return historyDB
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ethos-history.db")
	}
	return filepath.Join(home, ".ethos", "history.db")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyPath())
	if err != nil {
		return err
	}
	defer store.Close()

	var records []history.Record
	if historyRun != "" {
		records, err = store.ListByRun(cmd.Context(), historyRun)
	} else {
		records, err = store.List(cmd.Context(), historyLimit)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No evaluations recorded.")
		return nil
	}

	fmt.Printf("%-20s  %-12s  %-12s  %5s  %-7s  %s\n",
		"TIMESTAMP", "RUN", "CATEGORY", "CONF", "OUTCOME", "REASON")
	for _, r := range records {
		outcome := "proceed"
		if r.Deferred {
			outcome = "defer"
		}
		fmt.Printf("%-20s  %-12s  %-12s  %.2f  %-7s  %s\n",
			r.Timestamp.Format(time.RFC3339)[:19],
			truncate(r.RunID, 12),
			r.Category,
			r.Confidence,
			outcome,
			truncate(r.Reason, 50))
	}
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyPath())
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
