package driven

import (
	"context"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// HistoryStore persists session records append-only. Creation of the
// storage location is idempotent. Appends must be serialised by the
// implementation so concurrent conversations cannot interleave
// writes.
type HistoryStore interface {
	// Append writes one record. Records are never mutated after this.
	Append(ctx context.Context, rec domain.SessionRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error)

	// Close releases resources.
	Close() error
}
