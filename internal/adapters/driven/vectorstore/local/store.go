// Package local provides a SQLite-backed vector store for offline use.
// Embeddings are stored as little-endian float32 blobs and scored in Go
// with cosine similarity. It trades scale for zero infrastructure: fine
// for a campus-sized corpus, not a Weaviate replacement.
package local

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultNamespace is the logical partition used when none is configured.
const DefaultNamespace = "ClubDocuments"

// Store is a SQLite-backed vector store.
type Store struct {
	db        *sql.DB
	path      string
	namespace string
}

// NewStore opens (or creates) the store at dataDir. An empty dataDir
// defaults to ~/.clubscout/data.
func NewStore(dataDir, namespace string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clubscout", "data")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:        db,
		path:      dbPath,
		namespace: namespace,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS chunks (
			id        TEXT NOT NULL,
			namespace TEXT NOT NULL,
			text      TEXT NOT NULL,
			embedding BLOB NOT NULL,
			metadata  TEXT NOT NULL,
			PRIMARY KEY (id, namespace)
		)
	`)
	if err != nil {
		return fmt.Errorf("creating chunks table: %w", err)
	}
	return nil
}

// Upsert writes the records inside one transaction. A record without a
// precomputed vector is rejected; this store cannot embed server-side.
func (s *Store) Upsert(ctx context.Context, records []driven.VectorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin transaction: %v", domain.ErrVectorStoreUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, namespace, text, embedding, metadata)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id, namespace) DO UPDATE SET
			text = excluded.text,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, rec := range records {
		if len(rec.Vector) == 0 {
			return written, fmt.Errorf("record %s has no embedding", rec.ID)
		}
		metadataJSON, err := json.Marshal(rec.Metadata)
		if err != nil {
			return written, fmt.Errorf("marshal metadata for %s: %w", rec.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, s.namespace, rec.Text, float32SliceToBytes(rec.Vector), string(metadataJSON)); err != nil {
			return written, fmt.Errorf("upserting %s: %w", rec.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

// Search scans the namespace, filters on metadata, scores every surviving
// row with cosine similarity and returns the topK best.
func (s *Store) Search(ctx context.Context, query driven.SearchQuery) ([]domain.RetrievedMatch, error) {
	if len(query.Vector) == 0 {
		return nil, fmt.Errorf("query vector is required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, embedding, metadata FROM chunks WHERE namespace = ?
	`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrVectorStoreUnavailable, err)
	}
	defer rows.Close()

	var matches []domain.RetrievedMatch
	for rows.Next() {
		var (
			id, text, metadataJSON string
			blob                   []byte
		)
		if err := rows.Scan(&id, &text, &blob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		var metadata map[string]any
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata for %s: %w", id, err)
		}
		if !matchesFilters(metadata, query.Filters) {
			continue
		}

		matches = append(matches, domain.RetrievedMatch{
			ID:       id,
			Score:    cosineSimilarity(query.Vector, bytesToFloat32Slice(blob)),
			Text:     text,
			Metadata: metadata,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	topK := query.TopK
	if topK <= 0 || topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

// DeleteNamespace removes every record in the namespace.
func (s *Store) DeleteNamespace(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE namespace = ?`, s.namespace); err != nil {
		return fmt.Errorf("%w: clearing namespace %s: %v", domain.ErrVectorStoreUnavailable, s.namespace, err)
	}
	return nil
}

// Stats reports the record count in the namespace.
func (s *Store) Stats(ctx context.Context) (driven.StoreStats, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE namespace = ?`, s.namespace).Scan(&count)
	if err != nil {
		return driven.StoreStats{}, fmt.Errorf("%w: counting chunks: %v", domain.ErrVectorStoreUnavailable, err)
	}
	return driven.StoreStats{VectorCount: count, Namespace: s.namespace}, nil
}

// Ping verifies the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// matchesFilters applies the metadata constraints: organisation name is an
// exact match, dues is an upper bound.
func matchesFilters(metadata map[string]any, filters domain.Filters) bool {
	if filters.OrganizationName != "" {
		name, _ := metadata["organization_name"].(string)
		if name != filters.OrganizationName {
			return false
		}
	}
	if filters.MaxDues != nil {
		dues, ok := metadata["dues"].(float64)
		if !ok || dues > *filters.MaxDues {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
