// Package file loads and persists the application configuration as TOML
// in the clubscout config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values mirror the tuned pipeline parameters.
const (
	DefaultChunkSize    = 300
	DefaultChunkOverlap = 50
	DefaultTopK         = 5
	DefaultTemperature  = 0.3
	DefaultMaxTokens    = 1000
	DefaultBatchSize    = 100
	DefaultNamespace    = "ClubDocuments"
)

// Config is the full application configuration.
type Config struct {
	Ingest    IngestConfig    `toml:"ingest"`
	Query     QueryConfig     `toml:"query"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Store     StoreConfig     `toml:"store"`
}

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	// ChunkSize is the token budget per chunk.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the token budget carried over between chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// BatchSize is the number of records per vector store upsert.
	BatchSize int `toml:"batch_size"`
}

// QueryConfig tunes the query pipeline.
type QueryConfig struct {
	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`

	// Temperature controls generation randomness.
	Temperature float64 `toml:"temperature"`

	// MaxTokens caps the generated answer length.
	MaxTokens int `toml:"max_tokens"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "hash".
	Provider string `toml:"provider"`

	// BaseURL overrides the Ollama endpoint.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// Dimensions is the embedding vector size.
	Dimensions int `toml:"dimensions"`
}

// LLMConfig selects and configures the generation provider.
type LLMConfig struct {
	// Provider is "groq" or "anthropic".
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// APIKey authenticates against the provider. Usually supplied via
	// environment instead of the config file.
	APIKey string `toml:"api_key"`
}

// StoreConfig selects and configures the vector store backend.
type StoreConfig struct {
	// Backend is "weaviate" or "local".
	Backend string `toml:"backend"`

	// Host is the Weaviate host:port.
	Host string `toml:"host"`

	// Scheme is http or https.
	Scheme string `toml:"scheme"`

	// APIKey authenticates against a secured Weaviate instance.
	APIKey string `toml:"api_key"`

	// Namespace is the collection chunks are stored in.
	Namespace string `toml:"namespace"`

	// DataDir is the local store's directory.
	DataDir string `toml:"data_dir"`
}

// Default returns a configuration with every tunable at its default.
func Default() Config {
	return Config{
		Ingest: IngestConfig{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
			BatchSize:    DefaultBatchSize,
		},
		Query: QueryConfig{
			TopK:        DefaultTopK,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
		},
		LLM: LLMConfig{
			Provider: "groq",
		},
		Store: StoreConfig{
			Backend:   "weaviate",
			Namespace: DefaultNamespace,
		},
	}
}

// Dir returns the config directory, defaulting to ~/.clubscout.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".clubscout"), nil
}

// Load reads config.toml from configDir, fills defaults for missing
// values and applies environment overrides. A missing file yields the
// defaults, not an error. An empty configDir means the default directory.
func Load(configDir string) (Config, error) {
	if configDir == "" {
		var err error
		configDir, err = Dir()
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration to config.toml in configDir.
func Save(configDir string, cfg Config) error {
	if configDir == "" {
		var err error
		configDir, err = Dir()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600)
}

// applyEnv overlays environment variables on the loaded configuration.
// Secrets belong in the environment, not the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" && cfg.LLM.Provider == "groq" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && cfg.LLM.Provider == "anthropic" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("WEAVIATE_HOST"); v != "" {
		cfg.Store.Host = v
	}
	if v := os.Getenv("WEAVIATE_SCHEME"); v != "" {
		cfg.Store.Scheme = v
	}
	if v := os.Getenv("WEAVIATE_API_KEY"); v != "" {
		cfg.Store.APIKey = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("ingest.chunk_size must be positive, got %d", c.Ingest.ChunkSize)
	}
	if c.Ingest.ChunkOverlap < 0 {
		return fmt.Errorf("ingest.chunk_overlap must not be negative, got %d", c.Ingest.ChunkOverlap)
	}
	if c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("ingest.chunk_overlap (%d) must be smaller than ingest.chunk_size (%d)", c.Ingest.ChunkOverlap, c.Ingest.ChunkSize)
	}
	if c.Ingest.BatchSize <= 0 {
		return fmt.Errorf("ingest.batch_size must be positive, got %d", c.Ingest.BatchSize)
	}
	if c.Query.TopK <= 0 {
		return fmt.Errorf("query.top_k must be positive, got %d", c.Query.TopK)
	}
	if c.Query.Temperature < 0 || c.Query.Temperature > 2 {
		return fmt.Errorf("query.temperature must be in [0, 2], got %g", c.Query.Temperature)
	}
	switch c.Embedding.Provider {
	case "ollama", "hash":
	default:
		return fmt.Errorf("embedding.provider must be ollama or hash, got %q", c.Embedding.Provider)
	}
	switch c.LLM.Provider {
	case "groq", "anthropic":
	default:
		return fmt.Errorf("llm.provider must be groq or anthropic, got %q", c.LLM.Provider)
	}
	switch c.Store.Backend {
	case "weaviate", "local":
	default:
		return fmt.Errorf("store.backend must be weaviate or local, got %q", c.Store.Backend)
	}
	return nil
}
