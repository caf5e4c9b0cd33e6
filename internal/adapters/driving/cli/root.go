// Package cli implements the cobra command surface of corpusmix.
// Commands talk to the core exclusively through the driving ports; the
// concrete services are injected once at startup via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpusmix-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Commands nil-check before use so partial wiring
// degrades to a clear error instead of a panic.
var (
	mixService  driving.MixService
	runService  driving.RunService
	dirStore    driven.DataDirStore
	configStore driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "corpusmix",
	Short: "Deterministic sampling and merging of audio corpus collections",
	Long: `corpusmix selects and merges subsets of labeled audio-corpus data
directories into a single destination, under a reproducible, quota-driven
sampling policy: per-source shares follow equal weights, explicit
percentages or counts, or a Zipf-law skew, and the same seed always
reproduces the same selection.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print pipeline diagnostics to stderr")
}

// SetServices injects the service implementations used by the commands.
func SetServices(
	mix driving.MixService,
	runs driving.RunService,
	dirs driven.DataDirStore,
	config driven.ConfigStore,
) {
	mixService = mix
	runService = runs
	dirStore = dirs
	configStore = config
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
