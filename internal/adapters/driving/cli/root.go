// Package cli implements the lore command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icta-labs/lore-cli/internal/adapters/driven/ai"
	"github.com/icta-labs/lore-cli/internal/adapters/driven/config/file"
	"github.com/icta-labs/lore-cli/internal/adapters/driven/history/jsonl"
	"github.com/icta-labs/lore-cli/internal/adapters/driven/history/sqlite"
	"github.com/icta-labs/lore-cli/internal/adapters/driven/storage/dir"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
	"github.com/icta-labs/lore-cli/internal/core/services"
	"github.com/icta-labs/lore-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "0.1.0"

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "lore",
	Short: "Question answering over your local documents",
	Long: `Lore indexes a folder of local text documents and answers
questions about them. Retrieval quality decides whether an answer is
grounded in the documents or generated without them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.lore)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.lore/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// openConfig opens the TOML configuration store.
func openConfig() (*file.ConfigStore, error) {
	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening configuration: %w", err)
	}
	return store, nil
}

// openRepository opens the index repository.
func openRepository() (*dir.Repository, error) {
	repo, err := dir.NewRepository(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening index repository: %w", err)
	}
	return repo, nil
}

// openHistory opens the configured history backend. JSONL is the
// default; sqlite is available for concurrent writers.
func openHistory(cfg driven.ConfigStore) (driven.HistoryStore, error) {
	switch backend := cfg.GetString(file.KeyHistoryBackend); backend {
	case "", "jsonl":
		return jsonl.NewStore(flagDataDir)
	case "sqlite":
		return sqlite.NewStore(flagDataDir)
	default:
		return nil, fmt.Errorf("unknown history backend %q (use jsonl or sqlite)", backend)
	}
}

// newEmbedder creates and validates the configured embedding service.
func newEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	return ai.CreateAndValidateEmbeddingService(file.EmbeddingSettings(cfg))
}

// newGenerator creates and validates the configured generation service.
func newGenerator(cfg driven.ConfigStore) (driven.GenerationService, error) {
	return ai.CreateAndValidateGenerationService(file.GenerationSettings(cfg))
}

// newAnswerService assembles the answer service from configuration.
func newAnswerService(
	cfg driven.ConfigStore,
	embedder driven.EmbeddingService,
	generator driven.GenerationService,
	repo driven.IndexRepository,
) *services.AnswerService {
	return services.NewAnswerService(embedder, generator, repo, services.AnswerConfig{
		Thresholds: file.Thresholds(cfg),
		Language:   file.Language(cfg),
		TopK:       file.TopK(cfg),
		MaxTokens:  file.MaxTokens(cfg),
		Intents:    services.DefaultIntents(),
	})
}
