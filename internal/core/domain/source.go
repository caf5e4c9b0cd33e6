package domain

import (
	"fmt"
	"path/filepath"
)

// SelectionUnit identifies what counts as one selectable item in a source.
type SelectionUnit string

const (
	// UnitRecording selects whole recordings.
	UnitRecording SelectionUnit = "recording"

	// UnitUtterance selects individual utterances.
	UnitUtterance SelectionUnit = "utterance"

	// UnitSpeaker selects speakers with all their utterances.
	UnitSpeaker SelectionUnit = "speaker"
)

// ParseSelectionUnit validates and returns a selection unit.
func ParseSelectionUnit(s string) (SelectionUnit, error) {
	switch SelectionUnit(s) {
	case UnitRecording, UnitUtterance, UnitSpeaker:
		return SelectionUnit(s), nil
	default:
		return "", fmt.Errorf("%w: unknown selection unit %q", ErrInvalidConfig, s)
	}
}

// PrefixMode controls how identifiers are rewritten to avoid collisions
// when subsets from different sources are merged.
type PrefixMode string

const (
	// PrefixIndex prefixes identifiers with the source's ordinal position,
	// as "p<index>_".
	PrefixIndex PrefixMode = "index"

	// PrefixName prefixes identifiers with the source directory's basename.
	PrefixName PrefixMode = "name"

	// PrefixNone leaves identifiers untouched. Collisions across sources
	// become the caller's problem.
	PrefixNone PrefixMode = "none"
)

// ParsePrefixMode validates and returns a prefix mode.
func ParsePrefixMode(s string) (PrefixMode, error) {
	switch PrefixMode(s) {
	case PrefixIndex, PrefixName, PrefixNone:
		return PrefixMode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown prefix mode %q", ErrInvalidConfig, s)
	}
}

// WeightMode selects the weighting scheme applied across sources.
type WeightMode string

const (
	// WeightUniform gives every source equal weight.
	WeightUniform WeightMode = "uniform"

	// WeightZipf weights rank i as i^(-s) over the configured source order.
	WeightZipf WeightMode = "zipf"
)

// ParseWeightMode validates and returns a weight mode.
func ParseWeightMode(s string) (WeightMode, error) {
	switch WeightMode(s) {
	case WeightUniform, WeightZipf:
		return WeightMode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown weight mode %q", ErrInvalidConfig, s)
	}
}

// Source is one input corpus directory contributing items to a mix.
// Identity is positional: the ordinal is the 1-based rank in the configured
// source list, used both for Zipf weighting and for index prefixing.
// Sources are immutable for the duration of a run.
type Source struct {
	// Path is the on-disk data directory of the source.
	Path string

	// Ordinal is the 1-based position in the configured source list.
	Ordinal int
}

// Name returns the source directory's basename, used for name prefixing
// and report display.
func (s Source) Name() string {
	return filepath.Base(s.Path)
}

// Prefix returns the identifier prefix for this source under the given mode.
func (s Source) Prefix(mode PrefixMode) string {
	switch mode {
	case PrefixIndex:
		return fmt.Sprintf("p%d_", s.Ordinal)
	case PrefixName:
		return s.Name() + "_"
	default:
		return ""
	}
}
