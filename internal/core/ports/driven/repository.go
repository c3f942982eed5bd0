package driven

import "github.com/icta-labs/lore-cli/internal/core/domain"

// IndexRepository owns the persisted (index, metadata, settings)
// triple. Writes are all-or-nothing: Save either replaces the whole
// triple atomically or leaves the previously persisted state
// untouched; readers never observe a partially written index.
type IndexRepository interface {
	// Create returns a new empty in-memory index of the given
	// dimension.
	Create(dimension int) (VectorIndex, error)

	// Exists reports whether a complete persisted index is present.
	Exists() bool

	// Save atomically replaces the persisted triple. The chunks slice
	// must be in the exact order vectors were added to the index.
	Save(idx VectorIndex, chunks []domain.Chunk, settings domain.IndexSettings) error

	// Load reads the persisted triple back. It fails with
	// domain.ErrIndexNotFound when nothing has been built.
	Load() (VectorIndex, []domain.Chunk, domain.IndexSettings, error)

	// Settings reads only the settings file, for compatibility checks
	// without loading vectors.
	Settings() (domain.IndexSettings, error)
}
