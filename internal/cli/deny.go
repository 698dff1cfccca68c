package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/review"
)

var denyDir string

func init() {
	rootCmd.AddCommand(denyCmd)
	denyCmd.Flags().StringVar(&denyDir, "dir", "", "Review store directory (default ~/.ethos/pending)")
}

var denyCmd = &cobra.Command{
	Use:   "deny <key>",
	Short: "Deny a deferred decision",
	Long:  "Marks a pending review as denied. The deferred actions stay blocked.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeny,
}

func runDeny(cmd *cobra.Command, args []string) error {
	key := args[0]

	store, err := review.NewStore(reviewDir(denyDir))
	if err != nil {
		return fmt.Errorf("failed to open review store: %w", err)
	}

	if err := store.Deny(key); err != nil {
		return err
	}

	fmt.Printf("Denied %q\n", key)
	return nil
}
