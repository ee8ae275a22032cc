package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/campus-labs/clubscout-cli/internal/chunker"
	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driving"
	"github.com/campus-labs/clubscout-cli/internal/extractors"
	"github.com/campus-labs/clubscout-cli/internal/logger"
	"github.com/campus-labs/clubscout-cli/internal/metadata"
	"github.com/campus-labs/clubscout-cli/internal/normaliser"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultBatchSize is the number of chunks per upsert batch.
const DefaultBatchSize = 100

// maxConcurrentBatches bounds parallel upserts against the store.
const maxConcurrentBatches = 4

// IngestService runs the document ingestion pipeline: extract, clean,
// derive metadata, chunk, embed and upsert.
type IngestService struct {
	registry *extractors.Registry
	embedder driven.EmbeddingService
	store    driven.VectorStore
	splitter *chunker.Splitter
}

// NewIngestService creates an ingest service. Zero chunkSize or a
// non-positive overlap fall back to the chunker defaults.
func NewIngestService(
	registry *extractors.Registry,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	chunkSize, chunkOverlap int,
) *IngestService {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	if chunkOverlap <= 0 {
		chunkOverlap = chunker.DefaultChunkOverlap
	}
	return &IngestService{
		registry: registry,
		embedder: embedder,
		store:    store,
		splitter: chunker.New(chunker.WithChunkSize(chunkSize), chunker.WithOverlap(chunkOverlap)),
	}
}

// ChunkID derives the deterministic identifier for a chunk: organisation
// name with spaces replaced by underscores, the chunk index, and the first
// 8 hex digits of the text's md5. Stable across re-ingestion of identical
// text, distinct for differing text.
func ChunkID(organizationName string, index int, text string) string {
	if organizationName == "" {
		organizationName = "unknown"
	}
	digest := md5.Sum([]byte(text))
	return fmt.Sprintf("%s_%d_%s",
		strings.ReplaceAll(organizationName, " ", "_"),
		index,
		hex.EncodeToString(digest[:])[:8],
	)
}

// Ingest processes every supported file under inputDir. Unreadable or
// empty documents are skipped with a warning, never fatal; failed upsert
// batches are dropped the same way. The report reflects what actually
// made it into the store.
func (s *IngestService) Ingest(ctx context.Context, inputDir string, opts driving.IngestOptions) (driving.IngestReport, error) {
	report := driving.IngestReport{PerDocument: make(map[string]int)}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	files, err := s.collectFiles(inputDir)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		return report, fmt.Errorf("%w: no supported documents in %s", domain.ErrInvalidInput, inputDir)
	}

	logger.Section("Processing Documents")
	logger.Info("found %d document(s) in %s", len(files), inputDir)

	var allChunks []domain.Chunk
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		chunks, err := s.processDocument(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", filepath.Base(path), err)
			report.DocumentsSkipped++
			continue
		}
		if len(chunks) == 0 {
			logger.Warn("skipping %s: no chunks produced", filepath.Base(path))
			report.DocumentsSkipped++
			continue
		}

		report.DocumentsProcessed++
		report.ChunksCreated += len(chunks)
		report.PerDocument[filepath.Base(path)] = len(chunks)
		allChunks = append(allChunks, chunks...)
	}

	if len(allChunks) == 0 {
		return report, nil
	}

	logger.Section("Uploading Chunks")
	report.ChunksUpserted = s.upsertChunks(ctx, allChunks, batchSize)
	logger.Info("upserted %d of %d chunks", report.ChunksUpserted, report.ChunksCreated)

	return report, nil
}

// Clear removes every record from the configured namespace.
func (s *IngestService) Clear(ctx context.Context) error {
	return s.store.DeleteNamespace(ctx)
}

// collectFiles walks inputDir and returns the supported files in a
// deterministic order.
func (s *IngestService) collectFiles(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if s.registry.Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", domain.ErrInvalidInput, inputDir, err)
	}
	sort.Strings(files)
	return files, nil
}

// processDocument runs extract, clean, metadata and chunking for one file.
func (s *IngestService) processDocument(ctx context.Context, path string) ([]domain.Chunk, error) {
	fileName := filepath.Base(path)
	logger.Debug("processing %s", fileName)

	extractor, err := s.registry.ForPath(path)
	if err != nil {
		return nil, err
	}

	rawText, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	cleanText := normaliser.Clean(rawText)
	if cleanText == "" {
		return nil, fmt.Errorf("%w: no text extracted", domain.ErrExtraction)
	}
	logger.Debug("extracted %d characters", len(cleanText))

	meta := metadata.Extract(cleanText, fileName)
	logger.Debug("organization: %s", meta.OrganizationName)

	texts := s.splitter.Split(cleanText)
	chunks := make([]domain.Chunk, 0, len(texts))
	for idx, text := range texts {
		chunks = append(chunks, domain.Chunk{
			Text:        text,
			Index:       idx,
			TotalChunks: len(texts),
			Metadata:    meta,
		})
	}
	return chunks, nil
}

// upsertChunks embeds and writes chunks in batches, several batches in
// flight at once. A failed batch is logged and dropped; the other batches
// are unaffected. Returns the confirmed written count.
func (s *IngestService) upsertChunks(ctx context.Context, chunks []domain.Chunk, batchSize int) int {
	var (
		mu       sync.Mutex
		upserted int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		batchNum := start/batchSize + 1

		g.Go(func() error {
			written, err := s.upsertBatch(ctx, batch)
			if err != nil {
				logger.Warn("batch %d failed: %v", batchNum, err)
				return nil
			}
			logger.Debug("batch %d: %d chunks upserted", batchNum, written)

			mu.Lock()
			upserted += written
			mu.Unlock()
			return nil
		})
	}

	// Goroutines only return nil; Wait is for completion, not errors.
	_ = g.Wait()
	return upserted
}

func (s *IngestService) upsertBatch(ctx context.Context, chunks []domain.Chunk) (int, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding batch: %w", err)
	}

	records := make([]driven.VectorRecord, len(chunks))
	for i, c := range chunks {
		records[i] = driven.VectorRecord{
			ID:       ChunkID(c.Metadata.OrganizationName, c.Index, c.Text),
			Text:     c.Text,
			Vector:   vectors[i],
			Metadata: c.Flatten(),
		}
	}

	return s.store.Upsert(ctx, records)
}
