package driven

import (
	"context"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// CorpusSource enumerates the documents an index build reads.
// Scanning never fails outright for an empty or partially unreadable
// corpus: per-file errors are reported through ScanReport and the
// caller decides whether zero documents is fatal.
type CorpusSource interface {
	// Scan walks root recursively and returns every readable,
	// non-empty supported document.
	Scan(ctx context.Context, root string) ([]domain.Document, ScanReport, error)
}

// ScanReport summarises what a corpus scan encountered.
type ScanReport struct {
	// Scanned is the number of candidate files seen.
	Scanned int

	// Skipped lists files that were unreadable or empty, with the
	// reason.
	Skipped []SkippedFile
}

// SkippedFile records one file the scan could not use.
type SkippedFile struct {
	// Path is the file location.
	Path string

	// Reason is a short human-readable explanation.
	Reason string
}
