package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driving"
	"github.com/campus-labs/clubscout-cli/internal/extractors"
	"github.com/campus-labs/clubscout-cli/internal/extractors/plaintext"
)

const chessConstitution = `The name of this organization shall be the Chess Club of the university.

Membership requirements: open to all enrolled students. Attendance at two meetings per semester is expected.

The club meets every Tuesday. Dues are $10 per semester, payable at the first meeting.`

func newTestIngestService(store *mockVectorStore) *IngestService {
	return NewIngestService(
		extractors.NewRegistry(plaintext.New()),
		&mockEmbeddingService{dims: 8},
		store,
		0, 0,
	)
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestChunkID(t *testing.T) {
	a := ChunkID("Chess Club", 0, "some chunk text")
	b := ChunkID("Chess Club", 0, "some chunk text")
	c := ChunkID("Chess Club", 1, "some chunk text")
	d := ChunkID("Chess Club", 0, "different text")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)

	assert.True(t, strings.HasPrefix(a, "Chess_Club_0_"))
	// Suffix is the first 8 hex digits of the content hash.
	assert.Len(t, strings.TrimPrefix(a, "Chess_Club_0_"), 8)

	assert.True(t, strings.HasPrefix(ChunkID("", 2, "text"), "unknown_2_"))
}

func TestIngestSingleDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "chess_club.txt", chessConstitution)

	store := &mockVectorStore{}
	svc := newTestIngestService(store)

	report, err := svc.Ingest(context.Background(), dir, driving.IngestOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Zero(t, report.DocumentsSkipped)
	assert.Equal(t, report.ChunksCreated, report.ChunksUpserted)
	assert.Equal(t, report.ChunksCreated, report.PerDocument["chess_club.txt"])
	require.NotEmpty(t, store.records)

	rec := store.records[0]
	assert.NotEmpty(t, rec.Vector)
	assert.Equal(t, "Chess Club of the university", rec.Metadata["organization_name"])
	assert.Equal(t, 10.0, rec.Metadata["dues"])
	assert.Equal(t, "chess_club.txt", rec.Metadata["source_file"])
	assert.Equal(t, len(store.records), rec.Metadata["total_chunks"])
}

func TestIngestSkipsUnsupportedAndEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "chess_club.txt", chessConstitution)
	writeDoc(t, dir, "empty.txt", "   ")
	writeDoc(t, dir, "notes.md", "unsupported format, never visited")

	store := &mockVectorStore{}
	report, err := newTestIngestService(store).Ingest(context.Background(), dir, driving.IngestOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Equal(t, 1, report.DocumentsSkipped)
	assert.NotContains(t, report.PerDocument, "empty.txt")
	assert.NotContains(t, report.PerDocument, "notes.md")
}

func TestIngestMissingDirectory(t *testing.T) {
	store := &mockVectorStore{}
	_, err := newTestIngestService(store).Ingest(context.Background(), filepath.Join(t.TempDir(), "absent"), driving.IngestOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestNoSupportedDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "notes.md", "nothing ingestible here")

	store := &mockVectorStore{}
	_, err := newTestIngestService(store).Ingest(context.Background(), dir, driving.IngestOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestUpsertFailureIsSoft(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "chess_club.txt", chessConstitution)

	store := &mockVectorStore{upsertErr: errors.New("store down")}
	report, err := newTestIngestService(store).Ingest(context.Background(), dir, driving.IngestOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Positive(t, report.ChunksCreated)
	assert.Zero(t, report.ChunksUpserted)
}

func TestIngestDeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "chess_club.txt", chessConstitution)

	store := &mockVectorStore{}
	svc := newTestIngestService(store)

	_, err := svc.Ingest(context.Background(), dir, driving.IngestOptions{})
	require.NoError(t, err)
	firstIDs := recordIDs(store)

	store.records = nil
	_, err = svc.Ingest(context.Background(), dir, driving.IngestOptions{})
	require.NoError(t, err)

	assert.Equal(t, firstIDs, recordIDs(store))
}

func TestClear(t *testing.T) {
	store := &mockVectorStore{}
	require.NoError(t, newTestIngestService(store).Clear(context.Background()))
	assert.True(t, store.cleared)
}

func recordIDs(store *mockVectorStore) []string {
	ids := make([]string, len(store.records))
	for i, rec := range store.records {
		ids[i] = rec.ID
	}
	return ids
}
