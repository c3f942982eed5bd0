package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icta-labs/lore-cli/internal/adapters/driven/config/file"
	"github.com/icta-labs/lore-cli/internal/connectors/filesystem"
	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
	"github.com/icta-labs/lore-cli/internal/core/services"
)

var (
	indexDocs      string
	indexChunkSize int
	indexOverlap   int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the document index",
	Long: `Scans the corpus folder, splits every document into overlapping
chunks, embeds them and atomically replaces the persisted index.
A failed build leaves any previous index untouched.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexDocs, "docs", "d", "", "corpus folder to index (default from config docs.path)")
	indexCmd.Flags().IntVar(&indexChunkSize, "chunk-size", 0, "chunk window size in characters")
	indexCmd.Flags().IntVar(&indexOverlap, "overlap", 0, "chunk overlap in characters")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	docs := indexDocs
	if docs == "" {
		docs = cfg.GetString(file.KeyDocsPath)
	}
	if docs == "" {
		return errors.New("no corpus folder: pass --docs or set docs.path in config")
	}

	chunking := file.Chunking(cfg)
	if indexChunkSize > 0 {
		chunking.Size = indexChunkSize
	}
	if indexOverlap > 0 {
		chunking.Overlap = indexOverlap
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
	settings, err := indexer.Build(cmd.Context(), driving.BuildOptions{
		DocsPath: docs,
		Chunking: chunking,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			return fmt.Errorf("no usable documents under %s", docs)
		}
		return err
	}

	// Remember the corpus for later builds and for watch mode.
	if err := cfg.Set(file.KeyDocsPath, docs); err != nil {
		return fmt.Errorf("saving docs path: %w", err)
	}

	cmd.Printf("Indexed %d documents (%d chunks) from %s\n", settings.SourceCount, settings.ChunkCount, docs)
	cmd.Printf("Model %s, dimension %d, chunk %d/%d\n",
		settings.EmbeddingModel, settings.Dimension, settings.ChunkSize, settings.Overlap)
	return nil
}
