package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusmix-cli/internal/core/services"
)

var noOverlapWith string

var validateCmd = &cobra.Command{
	Use:   "validate <data-dir>",
	Short: "Check a data directory's tables for consistency",
	Long: `Checks that a data directory carries the required tables (wav.scp,
utt2spk) and that segments, durations and annotations only reference
identifiers that exist.

With --no-speaker-overlap, additionally verifies that the directory
shares no speakers with another directory - the usual train/dev leak
check.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&noOverlapWith, "no-speaker-overlap", "",
		"also verify no speaker appears in both this and the given directory")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if dirStore == nil {
		return errors.New("data directory store not configured")
	}
	ctx := context.Background()
	path := args[0]

	if err := dirStore.Validate(ctx, path); err != nil {
		return err
	}
	cmd.Printf("%s: OK\n", path)

	if noOverlapWith == "" {
		return nil
	}

	a, err := dirStore.Load(ctx, path)
	if err != nil {
		return err
	}
	b, err := dirStore.Load(ctx, noOverlapWith)
	if err != nil {
		return err
	}
	overlap := services.SpeakerOverlap(a, b)
	if len(overlap) > 0 {
		for _, spk := range overlap {
			cmd.PrintErrf("overlapping speaker: %s\n", spk)
		}
		return fmt.Errorf("%d speakers appear in both %s and %s", len(overlap), path, noOverlapWith)
	}
	cmd.Printf("no speaker overlap with %s (%d vs %d speakers)\n",
		noOverlapWith, len(a.Speakers()), len(b.Speakers()))
	return nil
}
