// Package index owns the fitted vectorizer and the stored
// (vector, chunk) pairs, and answers cosine-similarity queries.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/vectorizer"
)

// Index is an immutable similarity index. Build or Restore produce a
// fully formed instance; nothing mutates it afterwards, so concurrent
// Search calls need no locking. Rebuilding the corpus means building a
// new Index and swapping the reference held by callers.
type Index struct {
	model   *vectorizer.TFIDF
	entries []domain.IndexEntry
}

// Build fits a fresh TF-IDF model over the chunk texts and stores one
// entry per chunk in insertion order. This is the only way a
// vocabulary is produced; an index's model is never re-fit afterwards.
func Build(chunks []domain.Chunk) (*Index, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	model := vectorizer.New()
	vectors, err := model.FitTransform(texts)
	if err != nil {
		return nil, fmt.Errorf("fit corpus: %w", err)
	}

	entries := make([]domain.IndexEntry, len(chunks))
	for i := range chunks {
		entries[i] = domain.IndexEntry{Vector: vectors[i], Chunk: chunks[i]}
	}

	return &Index{model: model, entries: entries}, nil
}

// Len returns the number of stored entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Dimension returns the vector length shared by every entry.
func (ix *Index) Dimension() int { return ix.model.Dimension() }

// Search transforms the query under the index's own model and returns
// the top k chunks by cosine similarity, in descending order. Ties
// keep insertion order so identical inputs always rank identically.
// k <= 0 or an empty index yields an empty result.
func (ix *Index) Search(query string, k int) ([]domain.SearchResult, error) {
	if k <= 0 || len(ix.entries) == 0 {
		return []domain.SearchResult{}, nil
	}

	queryVec, err := ix.model.Transform(query)
	if err != nil {
		return nil, fmt.Errorf("transform query: %w", err)
	}

	results := make([]domain.SearchResult, len(ix.entries))
	for i, entry := range ix.entries {
		results[i] = domain.SearchResult{
			Chunk:      entry.Chunk,
			Similarity: cosineSimilarity(queryVec, entry.Vector),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Snapshot exports the complete index state for persistence.
func (ix *Index) Snapshot() *domain.IndexSnapshot {
	vocabulary, idf, fitted := ix.model.State()

	entries := make([]domain.IndexEntry, len(ix.entries))
	copy(entries, ix.entries)

	return &domain.IndexSnapshot{
		Vocabulary: vocabulary,
		IDF:        idf,
		Fitted:     fitted,
		Entries:    entries,
	}
}

// Restore rebuilds an index from a persisted snapshot. The restored
// index answers the same searches as the one the snapshot was taken
// from.
func Restore(snap *domain.IndexSnapshot) (*Index, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot: %w", domain.ErrSnapshotCorrupt)
	}

	dim := len(snap.Vocabulary)
	for i, entry := range snap.Entries {
		if len(entry.Vector) != dim {
			return nil, fmt.Errorf("entry %d: vector length %d does not match vocabulary size %d: %w",
				i, len(entry.Vector), dim, domain.ErrSnapshotCorrupt)
		}
	}

	model := vectorizer.Restore(snap.Vocabulary, snap.IDF, snap.Fitted)

	entries := make([]domain.IndexEntry, len(snap.Entries))
	copy(entries, snap.Entries)

	return &Index{model: model, entries: entries}, nil
}

// cosineSimilarity is dot(u,v) / (|u| * |v|), defined as 0 when either
// magnitude is exactly zero.
func cosineSimilarity(u, v []float64) float64 {
	var dot, uu, vv float64
	for i := range u {
		dot += u[i] * v[i]
		uu += u[i] * u[i]
		vv += v[i] * v[i]
	}

	if uu == 0 || vv == 0 {
		return 0
	}
	return dot / (math.Sqrt(uu) * math.Sqrt(vv))
}
