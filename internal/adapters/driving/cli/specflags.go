package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// specFlags is the shared parameter surface of the plan and mix commands.
type specFlags struct {
	sources      []string
	destination  string
	unit         string
	seed         int64
	prefixMode   string
	weightMode   string
	zipfExponent float64
	target       int
	percentages  []int
	counts       []int
	cap          bool
}

// register declares the flags on a command. The mix command additionally
// takes a destination; plan does not touch disk and needs none.
func (f *specFlags) register(cmd *cobra.Command, withDestination bool) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.sources, "source", nil, "source data directory (repeatable, order fixes ranks and prefixes)")
	flags.StringVar(&f.unit, "unit", string(domain.UnitUtterance), "selection unit: recording|utterance|speaker")
	flags.Int64Var(&f.seed, "seed", 777, "random seed shared across all sources")
	flags.StringVar(&f.prefixMode, "prefix", string(domain.PrefixIndex), "identifier prefix mode: index|name|none")
	flags.StringVar(&f.weightMode, "weights", string(domain.WeightUniform), "weight model: uniform|zipf")
	flags.Float64Var(&f.zipfExponent, "zipf-exponent", 1.0, "zipf exponent s (> 0), used with --weights=zipf")
	flags.IntVar(&f.target, "target", 0, "total number of items to draw across all sources")
	flags.IntSliceVar(&f.percentages, "percentage", nil, "explicit per-source percentage (repeatable, must sum to 100)")
	flags.IntSliceVar(&f.counts, "count", nil, "explicit per-source count (repeatable, overrides --target)")
	flags.BoolVar(&f.cap, "cap", false, "cap allocations to source availability instead of failing")
	if withDestination {
		flags.StringVar(&f.destination, "dest", "", "destination data directory for the merged subset")
	}
}

// spec builds a MixSpec from the flags, filling unset flags from the
// config store's persisted defaults.
func (f *specFlags) spec(cmd *cobra.Command) *domain.MixSpec {
	f.applyDefaults(cmd)
	return &domain.MixSpec{
		Destination:    f.destination,
		SourcePaths:    f.sources,
		Unit:           domain.SelectionUnit(f.unit),
		Seed:           f.seed,
		PrefixMode:     domain.PrefixMode(f.prefixMode),
		WeightMode:     domain.WeightMode(f.weightMode),
		ZipfExponent:   f.zipfExponent,
		TargetTotal:    f.target,
		Percentages:    f.percentages,
		Counts:         f.counts,
		CapToAvailable: f.cap,
	}
}

// applyDefaults overrides flags the user left untouched with values from
// the config file, when one is configured.
func (f *specFlags) applyDefaults(cmd *cobra.Command) {
	if configStore == nil {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("source") {
		if v := configStore.GetStringSlice("sources"); len(v) > 0 {
			f.sources = v
		}
	}
	if !flags.Changed("unit") {
		if v := configStore.GetString("unit"); v != "" {
			f.unit = v
		}
	}
	if !flags.Changed("seed") {
		if v, ok := configStore.Get("seed"); ok {
			if n, isInt := v.(int64); isInt {
				f.seed = n
			} else {
				f.seed = int64(configStore.GetInt("seed"))
			}
		}
	}
	if !flags.Changed("prefix") {
		if v := configStore.GetString("prefix_mode"); v != "" {
			f.prefixMode = v
		}
	}
	if !flags.Changed("weights") {
		if v := configStore.GetString("weight_mode"); v != "" {
			f.weightMode = v
		}
	}
	if !flags.Changed("zipf-exponent") {
		if v := configStore.GetFloat64("zipf_exponent"); v != 0 {
			f.zipfExponent = v
		}
	}
	if !flags.Changed("cap") {
		if v, ok := configStore.Get("cap_to_available"); ok {
			if b, isBool := v.(bool); isBool {
				f.cap = b
			}
		}
	}
}
