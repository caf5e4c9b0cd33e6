package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// Weights builds the per-source weight vector for n sources.
// Uniform mode assigns 1 to every source. Zipf mode assigns rank i the
// weight i^(-exponent), where rank is the 1-based position in the
// configured source list. Rank is purely positional: reordering the
// source list changes the allocation.
func Weights(n int, mode domain.WeightMode, exponent float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: source count must be > 0, got %d", domain.ErrInvalidConfig, n)
	}
	w := make([]float64, n)
	switch mode {
	case domain.WeightUniform:
		for i := range w {
			w[i] = 1
		}
	case domain.WeightZipf:
		if exponent <= 0 {
			return nil, fmt.Errorf("%w: zipf exponent must be > 0, got %g", domain.ErrInvalidConfig, exponent)
		}
		for i := range w {
			w[i] = zipfWeight(i+1, exponent)
		}
	default:
		return nil, fmt.Errorf("%w: unknown weight mode %q", domain.ErrInvalidConfig, mode)
	}
	return w, nil
}

// zipfWeight returns rank^(-s). With s = 0 every rank weighs 1, which
// degenerates to the uniform model.
func zipfWeight(rank int, s float64) float64 {
	return math.Pow(float64(rank), -s)
}
