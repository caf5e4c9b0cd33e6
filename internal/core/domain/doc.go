// Package domain defines the core business entities for corpusmix.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Source: An input corpus directory with its positional identity
//   - DataDir: The parsed table set of a source (wav.scp, utt2spk, segments, ...)
//   - MixSpec: The validated parameter surface of one mix pass
//   - Plan: The computed per-source allocation
//   - MixReport: The accumulated outcome of a pass
//   - Run: The persisted manifest of a pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
