package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpusmix-cli/internal/logger"
)

// Ensure MixService implements the interface.
var _ driving.MixService = (*MixService)(nil)

// MixService runs the sampling pipeline: plan, per-source cap/sample/
// subset/prefix, duration accounting, merge. Sources are processed
// strictly sequentially so warnings and logs keep a reproducible order.
type MixService struct {
	dirs driven.DataDirStore
	runs driven.RunStore
}

// NewMixService creates a mix service. runStore may be nil, in which case
// runs are not recorded.
func NewMixService(dirs driven.DataDirStore, runs driven.RunStore) *MixService {
	return &MixService{dirs: dirs, runs: runs}
}

// Plan computes the allocation for a spec without touching source data.
func (s *MixService) Plan(_ context.Context, spec *domain.MixSpec) (domain.Plan, error) {
	if err := spec.Validate(); err != nil {
		return domain.Plan{}, err
	}
	return BuildPlan(spec)
}

// Mix executes one full pass. Any failure aborts the whole run: a partial
// destination is never valid output, and silently renormalizing the
// remaining sources would break the sum-to-target invariant.
func (s *MixService) Mix(ctx context.Context, spec *domain.MixSpec) (*domain.MixReport, error) {
	if err := spec.ValidateForMix(); err != nil {
		return nil, err
	}
	plan, err := BuildPlan(spec)
	if err != nil {
		return nil, err
	}

	report := &domain.MixReport{Plan: plan, Destination: spec.Destination}
	err = s.runPipeline(ctx, spec, plan, report)
	s.record(ctx, spec, report, err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// runPipeline does the per-source work inside a scoped temp directory that
// is removed on every exit path.
func (s *MixService) runPipeline(ctx context.Context, spec *domain.MixSpec, plan domain.Plan, report *domain.MixReport) error {
	tmpDir, err := os.MkdirTemp("", "corpusmix-*")
	if err != nil {
		return fmt.Errorf("creating working directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var subsetPaths []string
	for i, src := range spec.Sources() {
		result, err := s.processSource(ctx, spec, src, plan.Counts[i], tmpDir, report)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, result)
		if !result.Skipped {
			subsetPaths = append(subsetPaths, result.SubsetPath)
		}
	}

	if len(subsetPaths) == 0 {
		return fmt.Errorf("%w: no subsets produced, nothing to merge", domain.ErrEmptyResult)
	}
	if err := s.dirs.Merge(ctx, spec.Destination, subsetPaths); err != nil {
		return fmt.Errorf("merging subsets into %s: %w", spec.Destination, err)
	}
	return nil
}

// processSource caps, samples, subsets, prefixes and materialises one
// source's contribution.
func (s *MixService) processSource(
	ctx context.Context,
	spec *domain.MixSpec,
	src domain.Source,
	want int,
	tmpDir string,
	report *domain.MixReport,
) (domain.SourceResult, error) {
	result := domain.SourceResult{Source: src, Requested: want}

	dd, err := s.dirs.Load(ctx, src.Path)
	if err != nil {
		return result, fmt.Errorf("loading source %d (%s): %w", src.Ordinal, src.Path, err)
	}
	items := dd.Items(spec.Unit)
	avail := len(items)

	if want > avail {
		if !spec.CapToAvailable {
			return result, fmt.Errorf("%w: source %d (%s) has %d %ss, %d requested",
				domain.ErrInsufficientData, src.Ordinal, src.Path, avail, spec.Unit, want)
		}
		warning := fmt.Sprintf("source %d (%s): capped %d to %d available %ss",
			src.Ordinal, src.Path, want, avail, spec.Unit)
		logger.Warn("%s", warning)
		report.Warnings = append(report.Warnings, warning)
		want = avail
		result.Capped = true
	}
	if want <= 0 {
		warning := fmt.Sprintf("source %d (%s): empty allocation, skipped", src.Ordinal, src.Path)
		logger.Warn("%s", warning)
		report.Warnings = append(report.Warnings, warning)
		result.Skipped = true
		return result, nil
	}

	selected := Sample(items, spec.Seed, want)
	sub := dd.Subset(spec.Unit, selected).Prefixed(src.Prefix(spec.PrefixMode))
	result.Selected = want

	result.DurationSeconds, result.HasDuration = SubsetDuration(sub)
	if !result.HasDuration {
		logger.Info("source %d (%s): no duration information", src.Ordinal, src.Path)
	}

	result.SubsetPath = filepath.Join(tmpDir, fmt.Sprintf("subset_%d", src.Ordinal))
	if err := s.dirs.Write(ctx, result.SubsetPath, sub); err != nil {
		return result, fmt.Errorf("writing subset for source %d: %w", src.Ordinal, err)
	}
	logger.Debug("source %d (%s): selected %d of %d %ss", src.Ordinal, src.Path, want, avail, spec.Unit)
	return result, nil
}

// record persists the run manifest. Best effort: a manifest write failure
// never fails a run that already succeeded.
func (s *MixService) record(ctx context.Context, spec *domain.MixSpec, report *domain.MixReport, runErr error) {
	if s.runs == nil {
		return
	}
	run := domain.Run{
		ID:          uuid.NewString(),
		Pass:        spec.Pass(),
		CreatedAt:   time.Now().UTC(),
		Destination: spec.Destination,
		Unit:        spec.Unit,
		Seed:        spec.Seed,
		PrefixMode:  spec.PrefixMode,
		WeightMode:  spec.WeightMode,
		TargetTotal: spec.TargetTotal,
		Status:      domain.RunCompleted,
	}
	if runErr != nil {
		run.Status = domain.RunFailed
		run.Error = runErr.Error()
	}
	for _, res := range report.Results {
		run.Sources = append(run.Sources, domain.RunSource{
			Path:            res.Source.Path,
			Ordinal:         res.Source.Ordinal,
			Requested:       res.Requested,
			Selected:        res.Selected,
			Capped:          res.Capped,
			Skipped:         res.Skipped,
			DurationSeconds: res.DurationSeconds,
		})
	}
	if err := s.runs.Save(ctx, run); err != nil {
		logger.Warn("recording run manifest: %v", err)
	}
}
