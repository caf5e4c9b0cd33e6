package driven

import (
	"context"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// RunStore persists run manifests.
type RunStore interface {
	// Save stores or updates a run manifest.
	Save(ctx context.Context, run domain.Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns all recorded runs, most recent first.
	List(ctx context.Context) ([]domain.Run, error)
}
