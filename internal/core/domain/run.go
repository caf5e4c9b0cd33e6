package domain

import "time"

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is the persisted manifest of one mix pass: the spec snapshot plus the
// per-source outcome. Manifests exist so operators can audit that a corpus
// was built with the seed and composition they think it was.
type Run struct {
	// ID is a UUID assigned when the run starts.
	ID string

	// Pass labels the pipeline invocation ("train" or "dev").
	Pass string

	// CreatedAt is when the run started.
	CreatedAt time.Time

	Destination string
	Unit        SelectionUnit
	Seed        int64
	PrefixMode  PrefixMode
	WeightMode  WeightMode
	TargetTotal int

	Status RunStatus

	// Error holds the failure message for failed runs.
	Error string

	// Sources records the per-source outcome, in source order.
	Sources []RunSource
}

// RunSource is the persisted per-source slice of a run manifest.
type RunSource struct {
	Path            string
	Ordinal         int
	Requested       int
	Selected        int
	Capped          bool
	Skipped         bool
	DurationSeconds float64
}
