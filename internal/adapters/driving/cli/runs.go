package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded mix runs",
	Long: `Lists the persisted manifests of past mix runs: when they ran, with
which seed and targets, and what each source contributed. Manifests are
the audit trail behind the reproducibility guarantee.`,
	RunE: runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	runs, err := runService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}
	for _, run := range runs {
		cmd.Printf("%s  %s  %-5s  %-9s  seed=%-6d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Pass,
			run.Status, run.Seed, run.Destination)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	run, err := runService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("loading run %s: %w", args[0], err)
	}
	renderRun(cmd, run)
	return nil
}
