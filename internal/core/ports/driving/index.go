package driving

import "context"

// IndexInfo describes the state of the live index.
type IndexInfo struct {
	// Ready reports whether an index has been built or loaded.
	Ready bool

	// Chunks is the number of stored entries.
	Chunks int

	// Dimension is the vocabulary size of the fitted model.
	Dimension int

	// SnapshotPath is where the index is persisted.
	SnapshotPath string
}

// BuildStats summarizes an index build.
type BuildStats struct {
	// Documents is the number of corpus documents processed.
	Documents int

	// Chunks is the number of chunks produced and indexed.
	Chunks int
}

// IndexService manages the lifecycle of the retrieval index.
type IndexService interface {
	// Build chunks the corpus, builds a fresh index, persists it and
	// atomically makes it the live index.
	Build(ctx context.Context) (BuildStats, error)

	// Load restores the index from its snapshot and makes it live.
	// It never falls back to rebuilding; that choice belongs to the
	// caller.
	Load(ctx context.Context) error

	// Ready reports whether a live index exists.
	Ready() bool

	// Info describes the live index.
	Info() IndexInfo

	// Documents lists the corpus document IDs.
	Documents(ctx context.Context) ([]string, error)
}
