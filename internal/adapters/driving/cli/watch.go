package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/icta-labs/lore-cli/internal/adapters/driven/config/file"
	"github.com/icta-labs/lore-cli/internal/connectors/filesystem"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
	"github.com/icta-labs/lore-cli/internal/core/services"
	"github.com/icta-labs/lore-cli/internal/watcher"
)

var (
	watchDocs     string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index when the corpus changes",
	Long: `Watches the corpus folder and rebuilds the whole index after
changes settle. Every rebuild is atomic: queries served meanwhile see
the previous index until the new one is in place.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDocs, "docs", "d", "", "corpus folder to watch (default from config docs.path)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before a rebuild")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	docs := watchDocs
	if docs == "" {
		docs = cfg.GetString(file.KeyDocsPath)
	}
	if docs == "" {
		return errors.New("no corpus folder: pass --docs or set docs.path in config")
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	repo, err := openRepository()
	if err != nil {
		return err
	}

	indexer := services.NewIndexerService(filesystem.NewScanner(), embedder, repo)
	chunking := file.Chunking(cfg)

	rebuild := func(ctx context.Context) error {
		_, err := indexer.Build(ctx, driving.BuildOptions{
			DocsPath: docs,
			Chunking: chunking,
		})
		return err
	}

	// Build once up front so the watch starts from a fresh index.
	if err := rebuild(cmd.Context()); err != nil {
		return err
	}

	w, err := watcher.New(docs, watchDebounce, rebuild)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (debounce %s). Ctrl-C to stop.\n", docs, watchDebounce)
	err = w.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
