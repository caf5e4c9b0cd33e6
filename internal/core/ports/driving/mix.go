package driving

import (
	"context"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// MixService runs the apportionment and sampling pipeline.
type MixService interface {
	// Plan computes weights, percentages and per-source counts for a
	// spec without touching source data.
	Plan(ctx context.Context, spec *domain.MixSpec) (domain.Plan, error)

	// Mix executes a full pass: plan, per-source cap/sample/subset/prefix,
	// duration accounting, and the final merge into the destination.
	Mix(ctx context.Context, spec *domain.MixSpec) (*domain.MixReport, error)
}

// RunService exposes recorded run manifests.
type RunService interface {
	// List returns all recorded runs, most recent first.
	List(ctx context.Context) ([]domain.Run, error)

	// Get retrieves one run by ID.
	Get(ctx context.Context, id string) (*domain.Run, error)
}
