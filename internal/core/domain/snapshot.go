package domain

// IndexSnapshot is the persisted form of a fitted index: the frozen
// vectorization model plus every stored (vector, chunk) pair. It is a
// plain value so snapshot stores can encode it without reaching into
// index internals.
type IndexSnapshot struct {
	// Vocabulary maps a normalized token to its column in every vector.
	Vocabulary map[string]int

	// IDF maps a token to its inverse-document-frequency score.
	IDF map[string]float64

	// Fitted records whether the model had been fitted. A snapshot of
	// an unbuilt index is never written, but the flag round-trips.
	Fitted bool

	// Entries holds the stored pairs in insertion order. The slice
	// position is the row id used for tie-breaking at search time.
	Entries []IndexEntry
}

// IndexEntry is one stored (vector, chunk) pair.
type IndexEntry struct {
	// Vector is the TF-IDF vector, positionally aligned with the
	// snapshot's vocabulary columns.
	Vector []float64

	// Chunk is the chunk the vector was computed from.
	Chunk Chunk
}
