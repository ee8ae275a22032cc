package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Two implementations exist: a model-backed embedder (Ollama) and a
// deterministic hash fallback. The fallback is a placeholder for a missing
// capability, never a semantic embedding; it keeps the pipeline running
// offline and lets correctness tests run without a model.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size. This must match the
	// vector store's configured dimensionality.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
