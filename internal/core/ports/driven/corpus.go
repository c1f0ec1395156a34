package driven

import (
	"context"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// CorpusSource supplies the documents the index is built from.
type CorpusSource interface {
	// Load reads every document in the corpus. A missing corpus
	// location yields domain.ErrCorpusNotFound.
	Load(ctx context.Context) ([]domain.Document, error)

	// List returns the document IDs available in the corpus without
	// reading their contents.
	List(ctx context.Context) ([]string, error)
}
