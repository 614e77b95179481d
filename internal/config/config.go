// Package config loads application configuration from a TOML file with
// sensible defaults and environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when the config file omits a value.
const (
	DefaultChunkSize    = 700
	DefaultChunkOverlap = 100
	DefaultTopK         = 3

	DefaultGenerationModel = "gemini-flash-latest"
	DefaultEmbeddingModel  = "text-embedding-3-small"
)

// Config is the full application configuration.
type Config struct {
	// DataDir is the root directory for all persistent state
	// (vector index, metadata database). Default: ~/.astu-assist/data.
	DataDir string `toml:"data_dir"`

	Chunking   ChunkingConfig   `toml:"chunking"`
	Retrieval  RetrievalConfig  `toml:"retrieval"`
	Embedding  EmbeddingConfig  `toml:"embedding"`
	Generation GenerationConfig `toml:"generation"`
}

// ChunkingConfig controls how extracted text is split.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig controls context retrieval.
type RetrievalConfig struct {
	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`
}

// EmbeddingConfig configures the embedding API.
type EmbeddingConfig struct {
	// BaseURL of an OpenAI-compatible embeddings endpoint.
	// Empty selects the OpenAI default.
	BaseURL string `toml:"base_url"`

	Model string `toml:"model"`

	// APIKey is normally supplied via EMBEDDING_API_KEY instead.
	APIKey string `toml:"api_key"`
}

// GenerationConfig configures the Gemini API.
type GenerationConfig struct {
	// BaseURL overrides the Gemini endpoint, mainly for proxies.
	BaseURL string `toml:"base_url"`

	Model string `toml:"model"`

	// APIKey is normally supplied via GEMINI_API_KEY instead.
	APIKey string `toml:"api_key"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalConfig{
			TopK: DefaultTopK,
		},
		Embedding: EmbeddingConfig{
			Model: DefaultEmbeddingModel,
		},
		Generation: GenerationConfig{
			Model: DefaultGenerationModel,
		},
	}
}

// Load reads configuration from the given TOML file. A missing file is not
// an error; defaults apply. If path is empty, ~/.astu-assist/config.toml
// is used. Environment variables override file values for API keys.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".astu-assist", "config.toml")
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file yet, run on defaults.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv lets environment variables override file-provided secrets.
func (c *Config) applyEnv() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Generation.APIKey = key
	}
	if key := os.Getenv("EMBEDDING_API_KEY"); key != "" {
		c.Embedding.APIKey = key
	}
}

// validate rejects configurations the chunker or retriever cannot run with.
func (c *Config) validate() error {
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("config: chunking.size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("config: chunking.overlap must be in [0, size), got %d", c.Chunking.Overlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("config: retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	return nil
}

// ResolveDataDir returns the data directory, defaulting under the home
// directory when unset.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".astu-assist", "data"), nil
}
