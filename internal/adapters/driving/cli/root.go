// Package cli implements the clubscout command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/campus-labs/clubscout-cli/internal/adapters/driven/config/file"
	"github.com/campus-labs/clubscout-cli/internal/adapters/driven/embedding/hash"
	"github.com/campus-labs/clubscout-cli/internal/adapters/driven/embedding/ollama"
	"github.com/campus-labs/clubscout-cli/internal/adapters/driven/llm/anthropic"
	"github.com/campus-labs/clubscout-cli/internal/adapters/driven/llm/groq"
	localstore "github.com/campus-labs/clubscout-cli/internal/adapters/driven/vectorstore/local"
	weaviatestore "github.com/campus-labs/clubscout-cli/internal/adapters/driven/vectorstore/weaviate"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driving"
	"github.com/campus-labs/clubscout-cli/internal/core/services"
	"github.com/campus-labs/clubscout-cli/internal/extractors"
	"github.com/campus-labs/clubscout-cli/internal/extractors/docx"
	"github.com/campus-labs/clubscout-cli/internal/extractors/pdf"
	"github.com/campus-labs/clubscout-cli/internal/extractors/plaintext"
	"github.com/campus-labs/clubscout-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services are wired lazily on first use. Tests inject mocks here.
var (
	cfg           configfile.Config
	ingestService driving.IngestService
	queryService  driving.QueryService
	vectorStore   driven.VectorStore
)

var rootCmd = &cobra.Command{
	Use:   "clubscout",
	Short: "Ask questions about student clubs and organizations",
	Long: `clubscout indexes student organization documents (constitutions,
handbooks, flyers) and answers natural-language questions about them,
with citations back to the source documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		logger.SetVerbose(verbose)
		loaded, err := configfile.Load(configDir)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.clubscout)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureVectorStore wires the configured vector store backend.
func ensureVectorStore(ctx context.Context) error {
	if vectorStore != nil {
		return nil
	}

	switch cfg.Store.Backend {
	case "local":
		store, err := localstore.NewStore(cfg.Store.DataDir, cfg.Store.Namespace)
		if err != nil {
			return fmt.Errorf("opening local store: %w", err)
		}
		vectorStore = store
	default:
		store, err := weaviatestore.NewStore(ctx, weaviatestore.Config{
			Host:   cfg.Store.Host,
			Scheme: cfg.Store.Scheme,
			APIKey: cfg.Store.APIKey,
			Class:  cfg.Store.Namespace,
		})
		if err != nil {
			return fmt.Errorf("connecting to weaviate: %w", err)
		}
		vectorStore = store
	}
	return nil
}

// buildEmbedder returns the configured embedding service.
func buildEmbedder() driven.EmbeddingService {
	if cfg.Embedding.Provider == "hash" {
		return hash.NewEmbeddingService(cfg.Embedding.Dimensions)
	}
	return ollama.NewEmbeddingService(ollama.Config{
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
}

// buildLLM returns the configured generation service.
func buildLLM() (driven.LLMService, error) {
	switch cfg.LLM.Provider {
	case "anthropic":
		return anthropic.NewLLMService(anthropic.Config{
			APIKey: cfg.LLM.APIKey,
			Model:  cfg.LLM.Model,
		})
	default:
		return groq.NewLLMService(groq.Config{
			APIKey: cfg.LLM.APIKey,
			Model:  cfg.LLM.Model,
		})
	}
}

// ensureIngestService wires the ingestion pipeline.
func ensureIngestService(ctx context.Context) error {
	if ingestService != nil {
		return nil
	}
	if err := ensureVectorStore(ctx); err != nil {
		return err
	}

	registry := extractors.NewRegistry(plaintext.New(), pdf.New(), docx.New())
	ingestService = services.NewIngestService(
		registry,
		buildEmbedder(),
		vectorStore,
		cfg.Ingest.ChunkSize,
		cfg.Ingest.ChunkOverlap,
	)
	return nil
}

// ensureQueryService wires the query pipeline.
func ensureQueryService(ctx context.Context) error {
	if queryService != nil {
		return nil
	}
	if err := ensureVectorStore(ctx); err != nil {
		return err
	}

	llm, err := buildLLM()
	if err != nil {
		return err
	}

	embedder := buildEmbedder()
	queryService = services.NewQueryService(
		embedder,
		hash.NewEmbeddingService(embedder.Dimensions()),
		vectorStore,
		llm,
		services.GenerationDefaults{
			TopK:        cfg.Query.TopK,
			Temperature: cfg.Query.Temperature,
			MaxTokens:   cfg.Query.MaxTokens,
		},
	)
	return nil
}
