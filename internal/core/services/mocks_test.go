package services

import (
	"context"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCorpusSource implements driven.CorpusSource for testing.
type mockCorpusSource struct {
	documents []domain.Document
	loadErr   error
}

func (m *mockCorpusSource) Load(_ context.Context) ([]domain.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.documents, nil
}

func (m *mockCorpusSource) List(_ context.Context) ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	ids := make([]string, len(m.documents))
	for i, doc := range m.documents {
		ids[i] = doc.ID
	}
	return ids, nil
}

// mockSnapshotStore implements driven.SnapshotStore in memory.
type mockSnapshotStore struct {
	snap    *domain.IndexSnapshot
	saveErr error
	loadErr error
	saves   int
}

func (m *mockSnapshotStore) Save(_ context.Context, snap *domain.IndexSnapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = snap
	m.saves++
	return nil
}

func (m *mockSnapshotStore) Load(_ context.Context) (*domain.IndexSnapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snap == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return m.snap, nil
}

func (m *mockSnapshotStore) Path() string { return "memory://snapshot" }

// mockGenerator implements driven.AnswerGenerator for testing.
type mockGenerator struct {
	answer      domain.Answer
	generateErr error
	calls       int
	lastChunks  []domain.Chunk
}

func (m *mockGenerator) Generate(_ context.Context, _ string, chunks []domain.Chunk) (domain.Answer, error) {
	m.calls++
	m.lastChunks = chunks
	if m.generateErr != nil {
		return domain.Answer{}, m.generateErr
	}
	return m.answer, nil
}

func (m *mockGenerator) Name() string { return "mock" }

var (
	_ driven.CorpusSource    = (*mockCorpusSource)(nil)
	_ driven.SnapshotStore   = (*mockSnapshotStore)(nil)
	_ driven.AnswerGenerator = (*mockGenerator)(nil)
)
