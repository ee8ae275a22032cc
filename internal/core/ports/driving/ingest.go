package driving

import "context"

// IngestService runs the document ingestion pipeline.
type IngestService interface {
	// Ingest processes every supported file under inputDir and upserts the
	// resulting chunks into the vector store.
	Ingest(ctx context.Context, inputDir string, opts IngestOptions) (IngestReport, error)

	// Clear destructively removes all records from the configured
	// namespace. Confirmation is the caller's responsibility.
	Clear(ctx context.Context) error
}

// IngestOptions configures one ingestion run.
type IngestOptions struct {
	// BatchSize is the number of chunks per upsert batch.
	BatchSize int
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// DocumentsProcessed counts files that yielded chunks.
	DocumentsProcessed int

	// DocumentsSkipped counts unreadable or empty files.
	DocumentsSkipped int

	// ChunksCreated counts chunks produced across all documents.
	ChunksCreated int

	// ChunksUpserted counts chunks confirmed written to the store.
	// May be lower than ChunksCreated when batches fail.
	ChunksUpserted int

	// PerDocument maps source file name to its chunk count.
	PerDocument map[string]int
}
