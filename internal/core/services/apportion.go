package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// Apportion distributes an integer total across shares using the
// largest-remainder (Hamilton) method. The result always sums to exactly
// total, and each entry differs from its exact proportional share by less
// than 1. Leftover units after flooring go to the largest fractional
// remainders; on equal remainders the lower original index wins, so the
// result is fully deterministic.
func Apportion(shares []float64, total int) ([]int, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: apportionment total must be > 0, got %d", domain.ErrInvalidConfig, total)
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares to apportion over", domain.ErrInvalidConfig)
	}
	sum := 0.0
	for i, s := range shares {
		if s < 0 {
			return nil, fmt.Errorf("%w: negative share %g at index %d", domain.ErrInvalidConfig, s, i)
		}
		sum += s
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: all shares are zero", domain.ErrInvalidConfig)
	}

	counts := make([]int, len(shares))
	remainders := make([]float64, len(shares))
	allocated := 0
	for i, s := range shares {
		exact := float64(total) * s / sum
		floor := math.Floor(exact)
		counts[i] = int(floor)
		remainders[i] = exact - floor
		allocated += counts[i]
	}

	// 0 <= leftover < len(shares)
	leftover := total - allocated
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := remainders[order[a]], remainders[order[b]]
		if ra != rb {
			return ra > rb
		}
		return order[a] < order[b]
	})
	for t := 0; t < leftover; t++ {
		counts[order[t]]++
	}
	return counts, nil
}

// BuildPlan runs the two-stage apportionment for a spec: weights to integer
// percentages summing to 100, then percentages to integer counts summing to
// the target total. Explicit percentages skip the first stage; explicit
// counts skip both (percentages are then derived from the counts for
// reporting). The two stages can drift up to one item from a single-stage
// apportionment; the intermediate percentages exist so operators can read
// and override them.
func BuildPlan(spec *domain.MixSpec) (domain.Plan, error) {
	var plan domain.Plan

	if len(spec.Counts) > 0 {
		total := 0
		for _, c := range spec.Counts {
			total += c
		}
		if total <= 0 {
			return plan, fmt.Errorf("%w: explicit counts sum to %d", domain.ErrInvalidConfig, total)
		}
		shares := make([]float64, len(spec.Counts))
		for i, c := range spec.Counts {
			shares[i] = float64(c)
		}
		pct, err := Apportion(shares, 100)
		if err != nil {
			return plan, err
		}
		plan.Percentages = pct
		plan.Counts = append([]int(nil), spec.Counts...)
		return plan, nil
	}

	if len(spec.Percentages) > 0 {
		plan.Percentages = append([]int(nil), spec.Percentages...)
	} else {
		weights, err := Weights(len(spec.SourcePaths), spec.WeightMode, spec.ZipfExponent)
		if err != nil {
			return plan, err
		}
		plan.Weights = weights
		shares := weights
		pct, err := Apportion(shares, 100)
		if err != nil {
			return plan, err
		}
		plan.Percentages = pct
	}

	shares := make([]float64, len(plan.Percentages))
	for i, p := range plan.Percentages {
		shares[i] = float64(p)
	}
	counts, err := Apportion(shares, spec.TargetTotal)
	if err != nil {
		return plan, err
	}
	plan.Counts = counts
	return plan, nil
}
