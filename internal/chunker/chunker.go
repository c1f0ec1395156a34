// Package chunker splits document text into overlapping, sentence-aligned
// passages used as retrieval units.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 50

// sentence terminators considered chunk boundaries.
const boundaryChars = ".?!"

// Chunker splits text into overlapping chunks, preferring to cut at
// sentence boundaries.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split cuts text into overlapping chunks. Each chunk is at most
// chunkSize characters; when a window contains a sentence terminator
// the cut moves back to just after the right-most one, keeping chunks
// sentence-aligned. Chunks are trimmed of surrounding whitespace and
// empty chunks are dropped. Split always terminates: the next window
// start is forced past the current one even when overlap >= chunkSize.
func (c *Chunker) Split(text string) []string {
	if len(text) <= c.chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.chunkSize
		if end < len(text) {
			// Prefer a sentence boundary inside the window. The cut
			// keeps the terminator so chunks end on full sentences.
			if p := strings.LastIndexAny(text[start:end], boundaryChars); p > 0 {
				end = start + p + 1
			}
		} else {
			end = len(text)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Overlap the next window, but never stall: if the overlap
		// would move the start at or before the current one, jump to
		// the end of this chunk instead.
		if end-c.overlap <= start {
			start = end
		} else {
			start = end - c.overlap
		}
	}

	return chunks
}

// ChunkDocument splits a document and wraps the pieces as domain chunks
// with fresh IDs and ordinal positions.
func (c *Chunker) ChunkDocument(doc domain.Document) []domain.Chunk {
	pieces := c.Split(doc.Content)
	if len(pieces) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    piece,
			Position:   i,
		}
	}

	return chunks
}
