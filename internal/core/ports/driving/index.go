package driving

import (
	"context"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// BuildOptions configures one index build.
type BuildOptions struct {
	// DocsPath is the corpus root to scan.
	DocsPath string

	// Chunking configures the chunk window and overlap.
	Chunking domain.ChunkingParams
}

// IndexService builds the persisted retrieval index. A build is a
// whole-corpus replace: there are no partial updates, and a failed
// build leaves any previously persisted index untouched.
type IndexService interface {
	// Build chunks, embeds and indexes the corpus, then atomically
	// replaces the persisted index. It fails with
	// domain.ErrNoDocuments when the corpus has no usable documents.
	Build(ctx context.Context, opts BuildOptions) (domain.IndexSettings, error)
}
