package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusNotFound indicates the corpus directory is missing.
	// Nothing can be indexed until the directory exists.
	ErrCorpusNotFound = errors.New("corpus not found")

	// ErrModelNotFitted indicates transform was called before fit.
	// A vectorizer has no vocabulary until it has been fitted.
	ErrModelNotFitted = errors.New("model not fitted")

	// ErrNotInitialized indicates a query was made before an index
	// was built or loaded. Distinct from an empty result set.
	ErrNotInitialized = errors.New("index not initialized")

	// Persistence Errors.

	// ErrSnapshotNotFound indicates the snapshot file is absent.
	// Callers may choose to rebuild from the corpus instead.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSnapshotCorrupt indicates the snapshot file exists but could
	// not be decoded (wrong format version, malformed data).
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrGeneratorUnavailable indicates no answer generator is configured.
	ErrGeneratorUnavailable = errors.New("answer generator unavailable")
)
