package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/quarry-labs/quarry/internal/chunker"
	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
	"github.com/quarry-labs/quarry/internal/core/ports/driving"
	"github.com/quarry-labs/quarry/internal/index"
	"github.com/quarry-labs/quarry/internal/logger"
)

// Ensure IndexManager implements the interface.
var _ driving.IndexService = (*IndexManager)(nil)

// IndexManager owns the live index. The index itself is immutable;
// Build and Load construct a new instance and swap the pointer, so
// concurrent searches never observe a half-built index.
type IndexManager struct {
	corpus    driven.CorpusSource
	snapshots driven.SnapshotStore
	chunker   *chunker.Chunker

	current atomic.Pointer[index.Index]
}

// NewIndexManager creates an index manager. The snapshot store may be
// nil, in which case builds are not persisted.
func NewIndexManager(corpus driven.CorpusSource, snapshots driven.SnapshotStore, ch *chunker.Chunker) *IndexManager {
	if ch == nil {
		ch = chunker.New()
	}
	return &IndexManager{
		corpus:    corpus,
		snapshots: snapshots,
		chunker:   ch,
	}
}

// Build chunks every corpus document, builds a fresh index over the
// chunks, persists the snapshot and makes the new index live.
func (m *IndexManager) Build(ctx context.Context) (driving.BuildStats, error) {
	logger.Section("Index Build")

	docs, err := m.corpus.Load(ctx)
	if err != nil {
		return driving.BuildStats{}, fmt.Errorf("load corpus: %w", err)
	}
	logger.Info("Loaded %d documents", len(docs))

	var chunks []domain.Chunk
	for _, doc := range docs {
		docChunks := m.chunker.ChunkDocument(doc)
		logger.Debug("Document %s: %d chunks", doc.ID, len(docChunks))
		chunks = append(chunks, docChunks...)
	}

	ix, err := index.Build(chunks)
	if err != nil {
		return driving.BuildStats{}, fmt.Errorf("build index: %w", err)
	}
	logger.Info("Built index: %d chunks, %d terms", ix.Len(), ix.Dimension())

	if m.snapshots != nil {
		if err := m.snapshots.Save(ctx, ix.Snapshot()); err != nil {
			return driving.BuildStats{}, fmt.Errorf("save snapshot: %w", err)
		}
		logger.Debug("Snapshot saved to %s", m.snapshots.Path())
	}

	m.current.Store(ix)

	return driving.BuildStats{Documents: len(docs), Chunks: ix.Len()}, nil
}

// Load restores the index from the snapshot store and makes it live.
// Load never rebuilds on failure; the caller decides whether to fall
// back to Build.
func (m *IndexManager) Load(ctx context.Context) error {
	if m.snapshots == nil {
		return domain.ErrSnapshotNotFound
	}

	logger.Section("Index Load")

	snap, err := m.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	ix, err := index.Restore(snap)
	if err != nil {
		return fmt.Errorf("restore index: %w", err)
	}
	logger.Info("Loaded index: %d chunks, %d terms", ix.Len(), ix.Dimension())

	m.current.Store(ix)
	return nil
}

// Ready reports whether a live index exists.
func (m *IndexManager) Ready() bool {
	return m.current.Load() != nil
}

// Current returns the live index, or nil when none has been built or
// loaded yet.
func (m *IndexManager) Current() *index.Index {
	return m.current.Load()
}

// Info describes the live index.
func (m *IndexManager) Info() driving.IndexInfo {
	info := driving.IndexInfo{}
	if m.snapshots != nil {
		info.SnapshotPath = m.snapshots.Path()
	}

	ix := m.current.Load()
	if ix == nil {
		return info
	}

	info.Ready = true
	info.Chunks = ix.Len()
	info.Dimension = ix.Dimension()
	return info
}

// Documents lists the corpus document IDs.
func (m *IndexManager) Documents(ctx context.Context) ([]string, error) {
	return m.corpus.List(ctx)
}
