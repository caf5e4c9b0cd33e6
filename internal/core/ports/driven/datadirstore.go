package driven

import (
	"context"

	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
)

// DataDirStore reads and writes corpus data directories on disk.
// It is the boundary to the table-file plumbing: the core never touches
// files directly.
type DataDirStore interface {
	// Load parses a source directory's table set. A missing required
	// table (wav.scp, utt2spk) fails with domain.ErrMissingInput naming
	// the file.
	Load(ctx context.Context, path string) (*domain.DataDir, error)

	// Write materialises a table set into a directory, regenerating
	// spk2utt and writing only the tables the set carries.
	Write(ctx context.Context, path string, d *domain.DataDir) error

	// Merge combines previously written subset directories into one
	// destination directory. Identifier uniqueness across subsets is the
	// caller's responsibility (via prefixing).
	Merge(ctx context.Context, destination string, subsetPaths []string) error

	// Validate checks a directory for required tables and internal
	// cross-reference consistency.
	Validate(ctx context.Context, path string) error
}
