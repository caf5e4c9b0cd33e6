package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
	"github.com/custodia-labs/corpusmix-cli/internal/logger"
)

var mixFlags specFlags

// Dev pass parameters. The dev pass is a fully independent pipeline
// invocation: every train flag has a --dev-* counterpart, defaulting to
// the train value when not given.
var (
	devDestination  string
	devTarget       int
	devSeed         int64
	devSources      []string
	devUnit         string
	devPrefixMode   string
	devWeightMode   string
	devZipfExponent float64
	devPercentages  []int
	devCounts       []int
	devCap          bool
)

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Sample and merge source subsets into a destination directory",
	Long: `Runs the full pipeline: apportions the target across the sources,
deterministically samples each source, rewrites identifiers to avoid
collisions, and merges the subsets into the destination directory.

With --dev-dest, a second independent pass builds a dev set with its own
target and seed. The two passes share no intermediate state.`,
	RunE: runMix,
}

func init() {
	mixFlags.register(mixCmd, true)
	flags := mixCmd.Flags()
	flags.StringVar(&devDestination, "dev-dest", "", "destination for an optional dev pass")
	flags.IntVar(&devTarget, "dev-target", 0, "target total for the dev pass")
	flags.Int64Var(&devSeed, "dev-seed", 0, "seed for the dev pass (defaults to --seed)")
	flags.StringSliceVar(&devSources, "dev-source", nil, "source directory for the dev pass (defaults to --source list)")
	flags.StringVar(&devUnit, "dev-unit", "", "selection unit for the dev pass (defaults to --unit)")
	flags.StringVar(&devPrefixMode, "dev-prefix", "", "prefix mode for the dev pass (defaults to --prefix)")
	flags.StringVar(&devWeightMode, "dev-weights", "", "weight model for the dev pass (defaults to --weights)")
	flags.Float64Var(&devZipfExponent, "dev-zipf-exponent", 0, "zipf exponent for the dev pass (defaults to --zipf-exponent)")
	flags.IntSliceVar(&devPercentages, "dev-percentage", nil, "explicit per-source percentage for the dev pass (repeatable)")
	flags.IntSliceVar(&devCounts, "dev-count", nil, "explicit per-source count for the dev pass (repeatable)")
	flags.BoolVar(&devCap, "dev-cap", false, "cap dev allocations to availability (defaults to --cap)")
	rootCmd.AddCommand(mixCmd)
}

func runMix(cmd *cobra.Command, _ []string) error {
	if mixService == nil {
		return errors.New("mix service not configured")
	}

	spec := mixFlags.spec(cmd)
	logger.Section("train pass")
	report, err := mixService.Mix(context.Background(), spec)
	if err != nil {
		return fmt.Errorf("train pass: %w", err)
	}
	renderReport(cmd, spec, report)

	if devDestination == "" {
		return nil
	}

	devSpec := devPassSpec(cmd, spec)
	logger.Section("dev pass")
	devReport, err := mixService.Mix(context.Background(), devSpec)
	if err != nil {
		return fmt.Errorf("dev pass: %w", err)
	}
	cmd.Println()
	renderReport(cmd, devSpec, devReport)
	return nil
}

// devPassSpec derives the dev pass from the train spec. Every parameter
// has a --dev-* counterpart; unset counterparts inherit the train value,
// except the explicit percentage/count lists, which are tied to the train
// target and never carry over implicitly.
func devPassSpec(cmd *cobra.Command, train *domain.MixSpec) *domain.MixSpec {
	dev := *train
	dev.PassLabel = "dev"
	dev.Destination = devDestination
	dev.TargetTotal = devTarget
	dev.Percentages = devPercentages
	dev.Counts = devCounts

	flags := cmd.Flags()
	if flags.Changed("dev-seed") {
		dev.Seed = devSeed
	}
	if len(devSources) > 0 {
		dev.SourcePaths = devSources
	}
	if devUnit != "" {
		dev.Unit = domain.SelectionUnit(devUnit)
	}
	if devPrefixMode != "" {
		dev.PrefixMode = domain.PrefixMode(devPrefixMode)
	}
	if devWeightMode != "" {
		dev.WeightMode = domain.WeightMode(devWeightMode)
	}
	if flags.Changed("dev-zipf-exponent") {
		dev.ZipfExponent = devZipfExponent
	}
	if flags.Changed("dev-cap") {
		dev.CapToAvailable = devCap
	}
	return &dev
}
