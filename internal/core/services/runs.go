package services

import (
	"context"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService exposes recorded run manifests.
type RunService struct {
	runs driven.RunStore
}

// NewRunService creates a run service.
func NewRunService(runs driven.RunStore) *RunService {
	return &RunService{runs: runs}
}

// List returns all recorded runs, most recent first.
func (s *RunService) List(ctx context.Context) ([]domain.Run, error) {
	if s.runs == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.runs.List(ctx)
}

// Get retrieves one run by ID.
func (s *RunService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if s.runs == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.runs.Get(ctx, id)
}
