package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ethos",
	Short: "Staged decision evaluation with deterministic ethical checks",
	Long:  "Classifies incoming records, proposes actions, and critiques every proposal\nagainst fixed ethical and epistemic rules. Low-confidence or constrained\ndecisions defer to a human instead of proceeding.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
