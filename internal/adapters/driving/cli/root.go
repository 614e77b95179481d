// Package cli wires the core services to a cobra command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/csec-astu/astu-assist/internal/adapters/driven/embedding/openai"
	"github.com/csec-astu/astu-assist/internal/adapters/driven/generation/gemini"
	"github.com/csec-astu/astu-assist/internal/adapters/driven/storage/sqlite"
	"github.com/csec-astu/astu-assist/internal/adapters/driven/vectorstore/chromem"
	"github.com/csec-astu/astu-assist/internal/chunker"
	"github.com/csec-astu/astu-assist/internal/config"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/core/ports/driving"
	"github.com/csec-astu/astu-assist/internal/core/services"
	"github.com/csec-astu/astu-assist/internal/extract"
	"github.com/csec-astu/astu-assist/internal/extract/pdf"
	"github.com/csec-astu/astu-assist/internal/extract/plaintext"
	"github.com/csec-astu/astu-assist/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	flagVerbose bool
	flagConfig  string
)

// Services available to the commands, populated by initServices.
var (
	ingestService  driving.IngestService
	answerService  driving.AnswerService
	historyService driving.HistoryService
	userService    driving.UserService
	vectorIndex    driven.VectorIndex
)

var rootCmd = &cobra.Command{
	Use:   "astu-assist",
	Short: "Document-grounded question answering for CSEC ASTU",
	Long: `astu-assist ingests documents into a local vector index and answers
questions about them with a Gemini-backed RAG pipeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices builds the adapter stack from configuration and hands the
// driven ports to the core services. Skipped for commands that touch no
// state (version, help). The answering service stays nil when no Gemini
// API key is configured; commands that need it check for that.
func initServices() error {
	if ingestService != nil {
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}

	index, err := chromem.NewStore(chromem.Config{
		Path:           filepath.Join(dataDir, "index"),
		EmbeddingModel: cfg.Embedding.Model,
	})
	if err != nil {
		return fmt.Errorf("opening vector index: %w", err)
	}

	embedder, err := openai.NewEmbeddingService(openai.Config{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
	})
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}

	splitter, err := chunker.New(
		chunker.WithSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return err
	}

	registry := extract.NewRegistry(plaintext.New(), pdf.New())

	ingestService = services.NewIngestService(registry, splitter, embedder, index, store.UserStore())
	historyService = services.NewHistoryService(store.HistoryStore())
	userService = services.NewUserService(store.UserStore())
	vectorIndex = index

	if cfg.Generation.APIKey != "" {
		generator, err := gemini.NewClient(gemini.Config{
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
		})
		if err != nil {
			return fmt.Errorf("creating generation client: %w", err)
		}
		answerService = services.NewAnswerService(embedder, index, generator, store.HistoryStore(), cfg.Retrieval.TopK)
	}

	return nil
}
