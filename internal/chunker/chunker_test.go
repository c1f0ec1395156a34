package chunker

import (
	"strings"
	"testing"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.ChunkSize() != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.ChunkSize())
		}
		if c.Overlap() != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.Overlap())
		}
	})

	t.Run("custom options", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(20))
		if c.ChunkSize() != 100 {
			t.Errorf("expected chunkSize 100, got %d", c.ChunkSize())
		}
		if c.Overlap() != 20 {
			t.Errorf("expected overlap 20, got %d", c.Overlap())
		}
	})

	t.Run("invalid options ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.ChunkSize() != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.ChunkSize())
		}
		if c.Overlap() != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", c.Overlap())
		}
	})
}

func TestSplit_ShortText(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))

	t.Run("returns whole text trimmed", func(t *testing.T) {
		chunks := c.Split("  Hello world.  ")
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0] != "Hello world." {
			t.Errorf("expected trimmed text, got %q", chunks[0])
		}
	})

	t.Run("empty input produces no chunks", func(t *testing.T) {
		if chunks := c.Split(""); chunks != nil {
			t.Errorf("expected nil, got %v", chunks)
		}
		if chunks := c.Split("   \n\t "); chunks != nil {
			t.Errorf("expected nil for whitespace-only input, got %v", chunks)
		}
	})
}

func TestSplit_SentenceBoundaries(t *testing.T) {
	c := New(WithChunkSize(30), WithOverlap(5))

	text := "First sentence here. Second sentence follows. Third one ends it."
	chunks := c.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every chunk except possibly the last should end on a terminator.
	for i, chunk := range chunks[:len(chunks)-1] {
		last := chunk[len(chunk)-1]
		if last != '.' && last != '?' && last != '!' {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, chunk)
		}
	}
}

func TestSplit_NoPunctuation(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(2))

	text := strings.Repeat("abcde", 10) // 50 chars, no terminators
	chunks := c.Split(text)

	if len(chunks) == 0 {
		t.Fatal("expected hard-cut chunks")
	}
	for i, chunk := range chunks {
		if len(chunk) > 10 {
			t.Errorf("chunk %d exceeds chunk size: %d chars", i, len(chunk))
		}
	}
}

func TestSplit_Termination(t *testing.T) {
	t.Run("overlap equals chunk size", func(t *testing.T) {
		c := New(WithChunkSize(10), WithOverlap(10))
		chunks := c.Split(strings.Repeat("x", 100))
		if len(chunks) == 0 {
			t.Fatal("expected chunks")
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(5), WithOverlap(50))
		chunks := c.Split(strings.Repeat("y", 40))
		if len(chunks) == 0 {
			t.Fatal("expected chunks")
		}
	})

	t.Run("text shorter than overlap", func(t *testing.T) {
		c := New(WithChunkSize(5), WithOverlap(50))
		chunks := c.Split("abc")
		if len(chunks) != 1 || chunks[0] != "abc" {
			t.Fatalf("expected single chunk, got %v", chunks)
		}
	})

	t.Run("punctuation only", func(t *testing.T) {
		c := New(WithChunkSize(4), WithOverlap(1))
		chunks := c.Split("..........")
		for i, chunk := range chunks {
			if strings.TrimSpace(chunk) == "" {
				t.Errorf("chunk %d is empty after trimming", i)
			}
		}
	})
}

func TestSplit_ChunksNeverEmpty(t *testing.T) {
	c := New(WithChunkSize(12), WithOverlap(4))

	text := "One.   Two!   Three?   Four.   Five and some trailing words"
	for _, chunk := range c.Split(text) {
		if strings.TrimSpace(chunk) != chunk {
			t.Errorf("chunk not trimmed: %q", chunk)
		}
		if chunk == "" {
			t.Error("empty chunk returned")
		}
	}
}

func TestSplit_Overlap(t *testing.T) {
	c := New(WithChunkSize(20), WithOverlap(5))

	text := strings.Repeat("z", 60) // no boundaries, pure hard cuts
	chunks := c.Split(text)

	// Hard cuts advance chunkSize-overlap characters per window, with a
	// final short window covering the overlapped tail.
	if len(chunks) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(chunks))
	}
	if chunks[0] != text[0:20] || chunks[1] != text[15:35] {
		t.Error("windows do not overlap as configured")
	}
}

func TestChunkDocument(t *testing.T) {
	c := New(WithChunkSize(25), WithOverlap(5))

	doc := domain.Document{
		ID:      "guide.txt",
		Content: "Alpha sentence one. Beta sentence two. Gamma sentence three.",
	}

	chunks := c.ChunkDocument(doc)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	seen := make(map[string]bool)
	for i, chunk := range chunks {
		if chunk.DocumentID != "guide.txt" {
			t.Errorf("chunk %d has wrong document ID %q", i, chunk.DocumentID)
		}
		if chunk.Position != i {
			t.Errorf("chunk %d has position %d", i, chunk.Position)
		}
		if chunk.ID == "" {
			t.Errorf("chunk %d has no ID", i)
		}
		if seen[chunk.ID] {
			t.Errorf("duplicate chunk ID %q", chunk.ID)
		}
		seen[chunk.ID] = true
	}
}

func TestChunkDocument_EmptyDocument(t *testing.T) {
	c := New()
	if chunks := c.ChunkDocument(domain.Document{ID: "empty.txt"}); chunks != nil {
		t.Errorf("expected nil, got %v", chunks)
	}
}
