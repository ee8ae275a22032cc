package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), "TestClubs")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(id string, vec []float32, metadata map[string]any) driven.VectorRecord {
	return driven.VectorRecord{ID: id, Text: "text for " + id, Vector: vec, Metadata: metadata}
}

func TestUpsertAndStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	written, err := store.Upsert(ctx, []driven.VectorRecord{
		record("chess_club_0_aabbccdd", []float32{1, 0, 0}, map[string]any{"organization_name": "Chess Club"}),
		record("chess_club_1_eeff0011", []float32{0, 1, 0}, map[string]any{"organization_name": "Chess Club"}),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.VectorCount)
	assert.Equal(t, "TestClubs", stats.Namespace)
}

func TestUpsertReplacesExistingID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, []driven.VectorRecord{
		record("chess_club_0_aabbccdd", []float32{1, 0, 0}, nil),
	})
	require.NoError(t, err)

	_, err = store.Upsert(ctx, []driven.VectorRecord{
		{ID: "chess_club_0_aabbccdd", Text: "revised", Vector: []float32{0, 1, 0}},
	})
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.VectorCount)

	matches, err := store.Search(ctx, driven.SearchQuery{Vector: []float32{0, 1, 0}, TopK: 1})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "revised", matches[0].Text)
}

func TestUpsertRejectsMissingVector(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upsert(context.Background(), []driven.VectorRecord{
		{ID: "no_vector", Text: "text"},
	})
	assert.Error(t, err)
}

func TestSearchRanksByCosine(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, []driven.VectorRecord{
		record("a", []float32{1, 0, 0}, nil),
		record("b", []float32{0.9, 0.1, 0}, nil),
		record("c", []float32{0, 0, 1}, nil),
	})
	require.NoError(t, err)

	matches, err := store.Search(ctx, driven.SearchQuery{Vector: []float32{1, 0, 0}, TopK: 2})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "b", matches[1].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestSearchAppliesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, []driven.VectorRecord{
		record("chess", []float32{1, 0, 0}, map[string]any{"organization_name": "Chess Club", "dues": 10.0}),
		record("robotics", []float32{1, 0, 0}, map[string]any{"organization_name": "Robotics Club", "dues": 40.0}),
		record("hiking", []float32{1, 0, 0}, map[string]any{"organization_name": "Hiking Club"}),
	})
	require.NoError(t, err)

	maxDues := 20.0
	matches, err := store.Search(ctx, driven.SearchQuery{
		Vector:  []float32{1, 0, 0},
		TopK:    10,
		Filters: domain.Filters{MaxDues: &maxDues},
	})
	require.NoError(t, err)
	// Hiking Club has no dues recorded, so a dues bound excludes it.
	require.Len(t, matches, 1)
	assert.Equal(t, "chess", matches[0].ID)

	matches, err = store.Search(ctx, driven.SearchQuery{
		Vector:  []float32{1, 0, 0},
		TopK:    10,
		Filters: domain.Filters{OrganizationName: "Robotics Club"},
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "robotics", matches[0].ID)
}

func TestDeleteNamespace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, []driven.VectorRecord{
		record("a", []float32{1, 0, 0}, nil),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteNamespace(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.VectorCount)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Zero(t, cosineSimilarity(nil, nil))
}
