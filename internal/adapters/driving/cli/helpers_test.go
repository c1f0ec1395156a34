package cli

import (
	"context"
	"sync"
	"time"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driving"
)

// mockIndexService is a configurable IndexService for command tests.
// Build is safe to call concurrently because the watch command runs it
// from its own goroutine.
type mockIndexService struct {
	mu         sync.Mutex
	buildStats driving.BuildStats
	buildErr   error
	buildCalls int
	loadErr    error
	loadCalls  int
	info       driving.IndexInfo
	docs       []string
	docsErr    error
}

var _ driving.IndexService = (*mockIndexService)(nil)

func (m *mockIndexService) Build(context.Context) (driving.BuildStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildCalls++
	return m.buildStats, m.buildErr
}

func (m *mockIndexService) buildCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buildCalls
}

func (m *mockIndexService) Load(context.Context) error {
	m.loadCalls++
	return m.loadErr
}

func (m *mockIndexService) Ready() bool { return m.info.Ready }

func (m *mockIndexService) Info() driving.IndexInfo { return m.info }

func (m *mockIndexService) Documents(context.Context) ([]string, error) {
	return m.docs, m.docsErr
}

// mockQueryService is a configurable QueryService for command tests.
type mockQueryService struct {
	result    domain.QueryResult
	queryErr  error
	lastRole  domain.Role
	lastTopK  int
	results   []domain.SearchResult
	searchErr error
	lastLimit int
}

var _ driving.QueryService = (*mockQueryService)(nil)

func (m *mockQueryService) Query(_ context.Context, question string, topK int, role domain.Role) (domain.QueryResult, error) {
	m.lastTopK = topK
	m.lastRole = role
	return m.result, m.queryErr
}

func (m *mockQueryService) Search(_ context.Context, query string, k int, role domain.Role) ([]domain.SearchResult, error) {
	m.lastLimit = k
	m.lastRole = role
	return m.results, m.searchErr
}

// setupTestServices wires mock services into the package and returns
// them along with a cleanup function restoring the previous state.
func setupTestServices() (*mockIndexService, *mockQueryService, func()) {
	oldIndex, oldQuery := indexService, queryService
	oldCorpus, oldGenerator := corpusDir, generatorName

	idx := &mockIndexService{
		info: driving.IndexInfo{
			Ready:        true,
			Chunks:       4,
			Dimension:    12,
			SnapshotPath: "/tmp/index.db",
		},
		docs: []string{"cloud_devops.txt", "cybersecurity.txt"},
	}
	qry := &mockQueryService{
		result: domain.QueryResult{
			Question:  "test",
			Answer:    "Firewalls block attacks.",
			Sources:   []string{"cybersecurity.txt"},
			Role:      "admin",
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		results: []domain.SearchResult{
			{Chunk: domain.Chunk{ID: "c1", DocumentID: "cybersecurity.txt",
				Content: "Firewalls block attacks."}, Similarity: 0.8123},
		},
	}

	indexService = idx
	queryService = qry

	return idx, qry, func() {
		indexService, queryService = oldIndex, oldQuery
		corpusDir, generatorName = oldCorpus, oldGenerator
	}
}
