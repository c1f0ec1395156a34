package driving

import (
	"context"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// QueryService answers questions against the live index with role
// filtering applied.
type QueryService interface {
	// Query retrieves context for the question, filters it by role,
	// generates an answer from the surviving chunks and redacts the
	// answer text. It fails with domain.ErrNotInitialized when no
	// index has been built or loaded.
	Query(ctx context.Context, question string, topK int, role domain.Role) (domain.QueryResult, error)

	// Search returns the role-filtered ranked chunks for a query
	// without invoking the answer generator.
	Search(ctx context.Context, query string, k int, role domain.Role) ([]domain.SearchResult, error)
}
