package services

import (
	"context"
	"fmt"
	"time"

	"github.com/quarry-labs/quarry/internal/access"
	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
	"github.com/quarry-labs/quarry/internal/core/ports/driving"
	"github.com/quarry-labs/quarry/internal/logger"
)

// Ensure Querier implements the interface.
var _ driving.QueryService = (*Querier)(nil)

// DefaultTopK is the number of context chunks retrieved per question
// when the caller does not specify one.
const DefaultTopK = 3

// noAccessAnswer is returned when role filtering removes every
// retrieved chunk; the generator is never invoked in that case.
const noAccessAnswer = "I couldn't find any relevant information in the documents accessible to your role."

// Querier answers questions against the live index, with the access
// filter applied both to retrieved chunks and to the answer text.
type Querier struct {
	indexes   *IndexManager
	filter    *access.Filter
	generator driven.AnswerGenerator
}

// NewQuerier creates a query service. The generator is optional; raw
// Search works without it, Query does not.
func NewQuerier(indexes *IndexManager, filter *access.Filter, generator driven.AnswerGenerator) *Querier {
	return &Querier{
		indexes:   indexes,
		filter:    filter,
		generator: generator,
	}
}

// Search returns the role-filtered ranked chunks for a query.
func (q *Querier) Search(ctx context.Context, query string, k int, role domain.Role) ([]domain.SearchResult, error) {
	ix := q.indexes.Current()
	if ix == nil {
		return nil, domain.ErrNotInitialized
	}

	if k <= 0 {
		k = DefaultTopK
	}
	role = domain.ParseRole(string(role))

	results, err := ix.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return q.filter.FilterResults(results, role), nil
}

// Query retrieves context, filters it by role, asks the generator and
// redacts the answer.
func (q *Querier) Query(ctx context.Context, question string, topK int, role domain.Role) (domain.QueryResult, error) {
	logger.Section("Query")

	ix := q.indexes.Current()
	if ix == nil {
		return domain.QueryResult{}, domain.ErrNotInitialized
	}

	if topK <= 0 {
		topK = DefaultTopK
	}
	role = domain.ParseRole(string(role))
	logger.Debug("Question: %q (role=%s, topK=%d)", question, role, topK)

	results, err := ix.Search(question, topK)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(results))

	results = q.filter.FilterResults(results, role)
	logger.Debug("After role filter: %d chunks", len(results))

	if len(results) == 0 {
		// Nothing this role may see; the generator is not consulted.
		return domain.QueryResult{
			Question:  question,
			Answer:    noAccessAnswer,
			Sources:   []string{},
			Role:      role,
			Timestamp: time.Now(),
		}, nil
	}

	if q.generator == nil {
		return domain.QueryResult{}, domain.ErrGeneratorUnavailable
	}

	chunks := make([]domain.Chunk, len(results))
	similarities := make([]float64, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
		similarities[i] = r.Similarity
	}

	logger.Debug("Generating answer with %s", q.generator.Name())
	answer, err := q.generator.Generate(ctx, question, chunks)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("generate answer: %w", err)
	}

	filtered := q.filter.FilterText(answer.Text, role)
	if filtered != answer.Text {
		logger.Info("Answer text was redacted for role %s", role)
	}

	return domain.QueryResult{
		Question:      question,
		Answer:        filtered,
		Sources:       answer.Sources,
		Model:         answer.Model,
		Role:          role,
		Filtered:      filtered != answer.Text,
		ContextChunks: len(chunks),
		Similarities:  similarities,
		Timestamp:     time.Now(),
	}, nil
}
