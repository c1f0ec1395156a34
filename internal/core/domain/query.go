package domain

import "time"

// SearchResult represents a single ranked retrieval hit.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity against the query, in [-1, 1].
	Similarity float64
}

// Answer is the output of an answer generator.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources lists the distinct document IDs that contributed context.
	Sources []string

	// Model identifies the generator that produced the answer.
	Model string
}

// QueryResult is the full response envelope for a question.
type QueryResult struct {
	// Question is the original question text.
	Question string `json:"question"`

	// Answer is the generated answer after redaction.
	Answer string `json:"answer"`

	// Sources lists the document IDs the answer drew from.
	Sources []string `json:"sources"`

	// Model identifies the generator used, empty when no generator ran.
	Model string `json:"model,omitempty"`

	// Role is the normalized role the query was evaluated under.
	Role Role `json:"role"`

	// Filtered reports whether redaction changed the answer text.
	Filtered bool `json:"filtered"`

	// ContextChunks is the number of chunks handed to the generator.
	ContextChunks int `json:"context_chunks"`

	// Similarities are the scores of the context chunks, ranked order.
	Similarities []float64 `json:"similarities,omitempty"`

	// Timestamp is when the query was answered.
	Timestamp time.Time `json:"timestamp"`
}
