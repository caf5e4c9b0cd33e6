package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidConfig indicates invalid or conflicting mix parameters.
	// Always fatal, reported before any I/O side effect where possible.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingInput indicates a required table file is absent for a source.
	ErrMissingInput = errors.New("missing input table")

	// ErrInsufficientData indicates a requested count exceeds what a source
	// can supply while capping is disabled.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyResult indicates no subsets were produced after processing
	// all sources, so there is nothing to merge.
	ErrEmptyResult = errors.New("empty result")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented indicates functionality is not configured.
	ErrNotImplemented = errors.New("not implemented")
)
