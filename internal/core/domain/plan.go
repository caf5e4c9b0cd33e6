package domain

// Plan is the computed allocation for one mix pass, before any source
// data is touched. It is immutable once computed.
type Plan struct {
	// Weights holds the raw per-source weights, in source order.
	Weights []float64

	// Percentages holds integer percentages summing to exactly 100.
	Percentages []int

	// Counts holds per-source item counts summing to exactly the target
	// total (before availability capping).
	Counts []int
}

// SourceResult records the outcome of processing one source.
type SourceResult struct {
	Source Source

	// Requested is the planned allocation; Selected is the final subset
	// size after capping. Selected < Requested only when capping fired.
	Requested int
	Selected  int

	// Capped is true when the allocation was clipped to availability.
	Capped bool

	// Skipped is true when the source contributed nothing (zero
	// allocation) and was excluded from the merge.
	Skipped bool

	// DurationSeconds is the selected subset's total wall-clock duration.
	// Zero with HasDuration false means no duration information existed.
	DurationSeconds float64
	HasDuration     bool

	// SubsetPath is the working directory holding the materialised,
	// possibly prefixed subset. Empty for skipped sources.
	SubsetPath string
}

// MixReport is the accumulated outcome of a full pass: per-source results,
// warnings gathered along the way, and the merged destination.
type MixReport struct {
	Plan        Plan
	Results     []SourceResult
	Warnings    []string
	Destination string
}

// TotalDuration sums the selected subsets' durations in seconds.
func (r *MixReport) TotalDuration() float64 {
	total := 0.0
	for _, res := range r.Results {
		total += res.DurationSeconds
	}
	return total
}

// DurationShare returns a result's percentage of the grand total duration,
// or 0 when the grand total is 0.
func (r *MixReport) DurationShare(res SourceResult) float64 {
	total := r.TotalDuration()
	if total == 0 {
		return 0
	}
	return res.DurationSeconds / total * 100
}
