package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/corpusmix-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/corpusmix-cli/internal/core/domain"
	"github.com/custodia-labs/corpusmix-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

// Store is a SQLite-backed run manifest store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a run store at the specified data directory.
// If dataDir is empty, defaults to ~/.corpusmix/data/runs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".corpusmix", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a run manifest and its per-source rows.
func (s *Store) Save(ctx context.Context, run domain.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, pass, created_at, destination, unit, seed, prefix_mode, weight_mode, target_total, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, error = excluded.error
	`, run.ID, run.Pass, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Destination,
		string(run.Unit), run.Seed, string(run.PrefixMode), string(run.WeightMode),
		run.TargetTotal, string(run.Status), run.Error)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_sources WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing run sources for %s: %w", run.ID, err)
	}
	for _, src := range run.Sources {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_sources (run_id, ordinal, path, requested, selected, capped, skipped, duration_seconds)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, src.Ordinal, src.Path, src.Requested, src.Selected,
			boolToInt(src.Capped), boolToInt(src.Skipped), src.DurationSeconds)
		if err != nil {
			return fmt.Errorf("saving run source %d for %s: %w", src.Ordinal, run.ID, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a run by ID, including its per-source rows.
func (s *Store) Get(ctx context.Context, id string) (*domain.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, pass, created_at, destination, unit, seed, prefix_mode, weight_mode, target_total, status, error
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}

	sources, err := s.runSources(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Sources = sources
	return run, nil
}

// List returns all runs, most recent first.
func (s *Store) List(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pass, created_at, destination, unit, seed, prefix_mode, weight_mode, target_total, status, error
		FROM runs ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		sources, err := s.runSources(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		run.Sources = sources
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// runSources loads the per-source rows for a run, in ordinal order.
func (s *Store) runSources(ctx context.Context, runID string) ([]domain.RunSource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, path, requested, selected, capped, skipped, duration_seconds
		FROM run_sources WHERE run_id = ? ORDER BY ordinal
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing sources for run %s: %w", runID, err)
	}
	defer rows.Close()

	var sources []domain.RunSource
	for rows.Next() {
		var src domain.RunSource
		var capped, skipped int
		if err := rows.Scan(&src.Ordinal, &src.Path, &src.Requested, &src.Selected,
			&capped, &skipped, &src.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scanning run source: %w", err)
		}
		src.Capped = capped != 0
		src.Skipped = skipped != 0
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.Run, error) {
	var run domain.Run
	var createdAt, unit, prefixMode, weightMode, status string
	if err := row.Scan(&run.ID, &run.Pass, &createdAt, &run.Destination, &unit,
		&run.Seed, &prefixMode, &weightMode, &run.TargetTotal, &status, &run.Error); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run timestamp %q: %w", createdAt, err)
	}
	run.CreatedAt = ts
	run.Unit = domain.SelectionUnit(unit)
	run.PrefixMode = domain.PrefixMode(prefixMode)
	run.WeightMode = domain.WeightMode(weightMode)
	run.Status = domain.RunStatus(status)
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
