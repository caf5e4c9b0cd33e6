package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var planFlags specFlags

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the per-source allocation without touching data",
	Long: `Computes weights, integer percentages and per-source item counts for
the given sources and target, and prints them. Nothing is read from or
written to the source directories: plan exists so the intermediate
percentages can be inspected and, if needed, overridden with --percentage
before running mix.`,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd, false)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if mixService == nil {
		return errors.New("mix service not configured")
	}

	spec := planFlags.spec(cmd)
	plan, err := mixService.Plan(context.Background(), spec)
	if err != nil {
		return err
	}

	renderPlan(cmd, spec, plan)
	return nil
}
