package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSelectionUnit_Valid tests all accepted selection units
func TestParseSelectionUnit_Valid(t *testing.T) {
	for _, s := range []string{"recording", "utterance", "speaker"} {
		unit, err := ParseSelectionUnit(s)
		require.NoError(t, err)
		assert.Equal(t, SelectionUnit(s), unit)
	}
}

// TestParseSelectionUnit_Unknown tests rejection of unknown units
func TestParseSelectionUnit_Unknown(t *testing.T) {
	_, err := ParseSelectionUnit("paragraph")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestParsePrefixMode_Valid tests all accepted prefix modes
func TestParsePrefixMode_Valid(t *testing.T) {
	for _, s := range []string{"index", "name", "none"} {
		mode, err := ParsePrefixMode(s)
		require.NoError(t, err)
		assert.Equal(t, PrefixMode(s), mode)
	}
}

// TestParsePrefixMode_Unknown tests rejection of unknown modes
func TestParsePrefixMode_Unknown(t *testing.T) {
	_, err := ParsePrefixMode("hash")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestParseWeightMode_Unknown tests rejection of unknown weight modes
func TestParseWeightMode_Unknown(t *testing.T) {
	_, err := ParseWeightMode("pareto")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestSource_Name tests basename extraction
func TestSource_Name(t *testing.T) {
	src := Source{Path: "/data/corpora/ami_train", Ordinal: 2}
	assert.Equal(t, "ami_train", src.Name())
}

// TestSource_Prefix tests prefix derivation per mode
func TestSource_Prefix(t *testing.T) {
	src := Source{Path: "/data/corpora/ami_train", Ordinal: 3}

	assert.Equal(t, "p3_", src.Prefix(PrefixIndex))
	assert.Equal(t, "ami_train_", src.Prefix(PrefixName))
	assert.Equal(t, "", src.Prefix(PrefixNone))
}
