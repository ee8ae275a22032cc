package driven

import (
	"context"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

// VectorStore persists chunk records and serves similarity search.
// Backed by Weaviate in production and a local SQLite store offline.
type VectorStore interface {
	// Upsert writes a batch of records. Records with an existing ID are
	// replaced. Returns the number of records confirmed written.
	Upsert(ctx context.Context, records []VectorRecord) (int, error)

	// Search runs a nearest-neighbour query restricted to topK results,
	// optionally constrained by metadata filters. A backend failure yields
	// an empty slice from callers' perspective; see services.
	Search(ctx context.Context, query SearchQuery) ([]domain.RetrievedMatch, error)

	// DeleteNamespace destructively clears every record in the namespace.
	// Operator confirmation is a caller-side concern.
	DeleteNamespace(ctx context.Context) error

	// Stats returns backend-reported counts, best-effort.
	Stats(ctx context.Context) (StoreStats, error)

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorRecord is a chunk prepared for storage.
type VectorRecord struct {
	// ID is deterministic and content-derived: stable across re-runs of
	// identical text, distinct for differing text.
	ID string

	// Text is the chunk content. Stored for retrieval display and used for
	// server-side embedding when Vector is nil.
	Text string

	// Vector is the precomputed embedding. Nil delegates embedding to the
	// backend.
	Vector []float32

	// Metadata is the flattened, single-level chunk metadata.
	Metadata map[string]any
}

// SearchQuery describes one similarity search.
type SearchQuery struct {
	// Text is the raw query, used when the backend embeds server-side.
	Text string

	// Vector is the client-side query embedding, preferred when set.
	Vector []float32

	// TopK is the maximum number of matches to return.
	TopK int

	// Filters constrains matches by flattened metadata.
	Filters domain.Filters
}

// StoreStats holds backend-reported index statistics.
type StoreStats struct {
	// VectorCount is the number of records in the namespace.
	VectorCount int64

	// Namespace is the logical partition the count refers to.
	Namespace string
}
