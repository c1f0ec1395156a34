package domain

// Document represents a source document loaded from the corpus.
// It is immutable once loaded; the retrieval pipeline never writes
// back to a Document.
type Document struct {
	// ID is the unique identifier, by convention the source filename
	// (e.g. "cybersecurity.txt").
	ID string

	// Path is the original filesystem location.
	Path string

	// Content is the full raw text of the document.
	Content string
}

// Chunk represents a retrieval unit cut from exactly one document.
// Chunks are produced once per corpus build and are immutable; the
// vector for a chunk lives in the index, not on the chunk itself.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID is the owning document's ID (its source filename).
	DocumentID string

	// Content is the text span of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int
}
