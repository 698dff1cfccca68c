package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
	"github.com/ndelias/ethos/internal/txguard"
)

var (
	actionParams string
	actionConfig string
)

func init() {
	rootCmd.AddCommand(actionCmd)
	actionCmd.Flags().StringVar(&actionParams, "params", "{}", "Action parameters as JSON")
	actionCmd.Flags().StringVar(&actionConfig, "config", "", "Path to config YAML (optional)")
}

var actionCmd = &cobra.Command{
	Use:   "action <name>",
	Short: "Check a blockchain action against the monetary safety gate",
	Long: "Runs a single action through parameter validation, address reputation,\n" +
		"contract data inspection, and the value ceiling without executing it.\n\n" +
		"Exit code 0 if approved, 1 if rejected.",
	Args: cobra.ExactArgs(1),
	RunE: runAction,
}

func runAction(cmd *cobra.Command, args []string) error {
	var params map[string]any
	if err := json.Unmarshal([]byte(actionParams), &params); err != nil {
		return fmt.Errorf("invalid params JSON: %w", err)
	}

	cfg, err := config.Load(actionConfig)
	if err != nil {
		return err
	}

	guard := txguard.New(cfg)
	verdict := guard.Evaluate(model.CandidateAction{
		Name:   args[0],
		Params: params,
	})

	if verdict.Approved {
		fmt.Printf("APPROVED: %s\n", verdict.Reason)
		return nil
	}
	fmt.Printf("REJECTED: %s\n", verdict.Reason)
	os.Exit(1)
	return nil
}
