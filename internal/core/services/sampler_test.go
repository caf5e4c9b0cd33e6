package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("utt%03d", i)
	}
	return ids
}

// TestSample_Deterministic tests the same (list, seed, k) reproduces the
// same ordered selection
func TestSample_Deterministic(t *testing.T) {
	ids := sampleIDs(50)
	first := Sample(ids, 777, 10)
	require.Len(t, first, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Sample(ids, 777, 10))
	}
}

// TestSample_SeedDivergence tests different seeds yield different orders
func TestSample_SeedDivergence(t *testing.T) {
	ids := sampleIDs(100)
	a := Sample(ids, 1, 20)
	b := Sample(ids, 2, 20)
	assert.NotEqual(t, a, b)
}

// TestSample_UniqueItems tests the selection contains no duplicates and
// only input identifiers
func TestSample_UniqueItems(t *testing.T) {
	ids := sampleIDs(30)
	valid := make(map[string]bool, len(ids))
	for _, id := range ids {
		valid[id] = true
	}

	sel := Sample(ids, 9, 30)
	seen := make(map[string]bool)
	for _, id := range sel {
		assert.True(t, valid[id])
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 30)
}

// TestSample_KClamped tests k beyond the list length returns everything
func TestSample_KClamped(t *testing.T) {
	ids := sampleIDs(5)
	sel := Sample(ids, 3, 8)
	assert.Len(t, sel, 5)
}

// TestSample_ZeroK tests non-positive k yields nothing
func TestSample_ZeroK(t *testing.T) {
	ids := sampleIDs(5)
	assert.Nil(t, Sample(ids, 3, 0))
	assert.Nil(t, Sample(ids, 3, -1))
}

// TestSample_InputUnmodified tests the caller's slice keeps its order
func TestSample_InputUnmodified(t *testing.T) {
	ids := sampleIDs(20)
	want := append([]string(nil), ids...)
	Sample(ids, 5, 10)
	assert.Equal(t, want, ids)
}
