// Package hash provides a deterministic fallback embedding service. It
// derives pseudo-vectors from a sha256 digest of the text, so equal texts
// always embed identically. The vectors carry no semantic signal; the
// adapter exists so ingestion and retrieval keep working offline and so
// the pipeline can be exercised in tests without a model server.
package hash

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions matches the nomic-embed-text vector size so hash
// vectors can share a collection with model vectors.
const DefaultDimensions = 768

// EmbeddingService generates deterministic hash-derived vectors.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a hash embedding service with the given
// dimensionality. Non-positive values fall back to DefaultDimensions.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed derives an L2-normalised vector from the text's sha256 digest.
// The digest is cycled to fill the configured dimensionality.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	digest := sha256.Sum256([]byte(text))

	vec := make([]float32, s.dimensions)
	var norm float64
	for i := range vec {
		b := digest[i%len(digest)]
		// Mix the position in so cycled bytes do not repeat verbatim.
		v := float64(b^byte(i)) / 255.0
		v -= 0.5
		vec[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec, nil
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// EmbedBatch embeds each text independently. It never fails.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

func (s *EmbeddingService) ModelName() string {
	return "hash-fallback"
}

// Ping always succeeds; there is no backing service.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

func (s *EmbeddingService) Close() error {
	return nil
}
