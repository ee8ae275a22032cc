package services

import (
	"context"
	"sync"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	dims     int
	embedErr error
	calls    int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vec := make([]float32, m.dims)
	for i := range vec {
		vec[i] = float32(len(text)%7) + float32(i)
	}
	return vec, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int            { return m.dims }
func (m *mockEmbeddingService) ModelName() string          { return "mock-embedder" }
func (m *mockEmbeddingService) Ping(context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error               { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	mu        sync.Mutex
	records   []driven.VectorRecord
	matches   []domain.RetrievedMatch
	upsertErr error
	searchErr error
	deleteErr error
	lastQuery driven.SearchQuery
	cleared   bool
}

func (m *mockVectorStore) Upsert(_ context.Context, records []driven.VectorRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	m.records = append(m.records, records...)
	return len(records), nil
}

func (m *mockVectorStore) Search(_ context.Context, query driven.SearchQuery) ([]domain.RetrievedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if query.TopK < len(m.matches) {
		return m.matches[:query.TopK], nil
	}
	return m.matches, nil
}

func (m *mockVectorStore) DeleteNamespace(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.cleared = true
	m.records = nil
	return nil
}

func (m *mockVectorStore) Stats(context.Context) (driven.StoreStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return driven.StoreStats{VectorCount: int64(len(m.records))}, nil
}

func (m *mockVectorStore) Ping(context.Context) error { return nil }
func (m *mockVectorStore) Close() error               { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	answer      string
	generateErr error
	lastPrompt  string
	lastOpts    driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.answer, nil
}

func (m *mockLLMService) ModelName() string          { return "mock-llm" }
func (m *mockLLMService) Ping(context.Context) error { return nil }
func (m *mockLLMService) Close() error               { return nil }
