package driven

import (
	"context"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// AnswerGenerator produces an answer to a question from retrieved
// context chunks. The core only ever hands it role-filtered chunks,
// never the raw search result.
type AnswerGenerator interface {
	// Generate answers the question using only the provided chunks.
	Generate(ctx context.Context, question string, chunks []domain.Chunk) (domain.Answer, error)

	// Name identifies the generator implementation.
	Name() string
}
