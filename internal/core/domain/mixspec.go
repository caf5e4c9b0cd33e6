package domain

import "fmt"

// MixSpec is the full parameter surface of one mix pass. A run consists of
// a train pass and an optional, fully independent dev pass, each described
// by its own MixSpec.
type MixSpec struct {
	// Destination is the output data directory for the merged subset.
	Destination string

	// SourcePaths are the input data directories, in configured order.
	// Order is significant: it fixes Zipf ranks and index prefixes.
	SourcePaths []string

	// Unit is the selection unit.
	Unit SelectionUnit

	// Seed drives the deterministic sampler. The same seed is shared
	// across all sources unless the operator overrides it; this reuse is
	// intentional and aids debugging.
	Seed int64

	// PrefixMode controls identifier rewriting before the merge.
	PrefixMode PrefixMode

	// WeightMode and ZipfExponent define the weight model.
	WeightMode   WeightMode
	ZipfExponent float64

	// TargetTotal is the total number of items to draw across all sources.
	// Ignored when explicit per-source counts are given.
	TargetTotal int

	// Percentages optionally overrides the weight model with explicit
	// integer percentages, one per source. Mutually exclusive with Counts.
	Percentages []int

	// Counts optionally fixes per-source item counts directly.
	// Mutually exclusive with Percentages.
	Counts []int

	// CapToAvailable clips a source's allocation to what it can supply
	// instead of failing the run.
	CapToAvailable bool

	// PassLabel names the pipeline invocation in run manifests
	// ("train" or "dev"). Empty defaults to "train".
	PassLabel string
}

// Pass returns the pass label, defaulting to "train".
func (m *MixSpec) Pass() string {
	if m.PassLabel == "" {
		return "train"
	}
	return m.PassLabel
}

// Sources returns the spec's source list with 1-based ordinals assigned.
func (m *MixSpec) Sources() []Source {
	out := make([]Source, 0, len(m.SourcePaths))
	for i, path := range m.SourcePaths {
		out = append(out, Source{Path: path, Ordinal: i + 1})
	}
	return out
}

// Validate checks the spec for invalid or conflicting parameters.
// It performs no I/O; availability is checked later against loaded sources.
// The destination is not required here: planning never touches disk, so
// only ValidateForMix insists on one.
func (m *MixSpec) Validate() error {
	if len(m.SourcePaths) == 0 {
		return fmt.Errorf("%w: no source directories given", ErrInvalidConfig)
	}
	if _, err := ParseSelectionUnit(string(m.Unit)); err != nil {
		return err
	}
	if _, err := ParsePrefixMode(string(m.PrefixMode)); err != nil {
		return err
	}
	if _, err := ParseWeightMode(string(m.WeightMode)); err != nil {
		return err
	}
	if m.WeightMode == WeightZipf && m.ZipfExponent <= 0 {
		return fmt.Errorf("%w: zipf exponent must be > 0, got %g", ErrInvalidConfig, m.ZipfExponent)
	}
	if len(m.Percentages) > 0 && len(m.Counts) > 0 {
		return fmt.Errorf("%w: explicit percentages and explicit counts are mutually exclusive", ErrInvalidConfig)
	}
	if len(m.Percentages) > 0 {
		if len(m.Percentages) != len(m.SourcePaths) {
			return fmt.Errorf("%w: %d percentages for %d sources", ErrInvalidConfig, len(m.Percentages), len(m.SourcePaths))
		}
		sum := 0
		for _, p := range m.Percentages {
			if p < 0 {
				return fmt.Errorf("%w: negative percentage %d", ErrInvalidConfig, p)
			}
			sum += p
		}
		if sum != 100 {
			return fmt.Errorf("%w: percentages sum to %d, want 100", ErrInvalidConfig, sum)
		}
	}
	if len(m.Counts) > 0 {
		if len(m.Counts) != len(m.SourcePaths) {
			return fmt.Errorf("%w: %d counts for %d sources", ErrInvalidConfig, len(m.Counts), len(m.SourcePaths))
		}
		for _, c := range m.Counts {
			if c < 0 {
				return fmt.Errorf("%w: negative count %d", ErrInvalidConfig, c)
			}
		}
	}
	if len(m.Counts) == 0 && m.TargetTotal <= 0 {
		return fmt.Errorf("%w: target total must be > 0, got %d", ErrInvalidConfig, m.TargetTotal)
	}
	return nil
}

// ValidateForMix runs Validate plus the checks a materialising pass needs.
func (m *MixSpec) ValidateForMix() error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Destination == "" {
		return fmt.Errorf("%w: no destination directory given", ErrInvalidConfig)
	}
	return nil
}
