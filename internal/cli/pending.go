package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/review"
)

var pendingDir string

func init() {
	rootCmd.AddCommand(pendingCmd)
	pendingCmd.Flags().StringVar(&pendingDir, "dir", "", "Review store directory (default ~/.ethos/pending)")
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List deferred decisions awaiting review",
	Long:  "Shows all reviews in the store with their status, category, confidence, and timestamps.",
	RunE:  runPending,
}

func runPending(cmd *cobra.Command, args []string) error {
	store, err := review.NewStore(reviewDir(pendingDir))
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}

	list, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No pending reviews.")
		return nil
	}

	fmt.Printf("%-42s %-10s %-12s %-5s %-40s %s\n", "KEY", "STATUS", "CATEGORY", "CONF", "REASON", "CREATED")
	for _, r := range list {
		fmt.Printf("%-42s %-10s %-12s %.2f  %-40s %s\n",
			r.Key,
			r.Status,
			r.Category,
			r.Confidence,
			truncate(r.Reason, 40),
			r.CreatedAt.Format("15:04:05"),
		)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
