package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates an unreadable or corrupt source file.
	// Ingestion logs the document and skips it; the batch continues.
	ErrExtraction = errors.New("extraction failed")

	// ErrUnsupportedFormat indicates a file extension with no extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrVectorStoreUnavailable indicates no backend connection.
	// Searches return empty and upserts return zero with a logged warning.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval degrades to the hash fallback embedder.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation backend is not configured.
	// Queries degrade to an error-text answer instead of failing.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
