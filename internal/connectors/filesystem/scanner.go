// Package filesystem loads the document corpus from a local
// directory tree.
package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
	"github.com/icta-labs/lore-cli/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driven.CorpusSource = (*Scanner)(nil)

// supportedExtensions are the file types the scanner indexes.
var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// Scanner walks a directory tree and loads every readable, non-empty
// supported file as a Document. Per-file failures are reported, not
// fatal: a corpus with some unreadable files still builds from the
// rest.
type Scanner struct{}

// NewScanner creates a filesystem corpus scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan recursively enumerates supported files under root. Document
// IDs are paths relative to root, so an index survives the corpus
// directory being moved. A missing or empty root yields zero
// documents without an error; the caller decides whether that is
// fatal.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.Document, driven.ScanReport, error) {
	var docs []domain.Document
	var report driven.ScanReport

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			report.Skipped = append(report.Skipped, driven.SkippedFile{Path: path, Reason: err.Error()})
			logger.Warn("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		report.Scanned++
		doc, reason := s.loadFile(root, path)
		if reason != "" {
			report.Skipped = append(report.Skipped, driven.SkippedFile{Path: path, Reason: reason})
			logger.Warn("skipping %s: %s", path, reason)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})

	if walkErr != nil {
		// Context cancellation is the only walk error we propagate;
		// a nonexistent root just means an empty corpus.
		if ctx.Err() != nil {
			return nil, report, walkErr
		}
		logger.Warn("corpus root %s: %v", root, walkErr)
	}

	logger.Debug("corpus scan: %d candidates, %d loaded, %d skipped",
		report.Scanned, len(docs), len(report.Skipped))
	return docs, report, nil
}

// loadFile reads one file. It returns a non-empty reason instead of
// an error when the file should be skipped.
func (s *Scanner) loadFile(root, path string) (domain.Document, string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, err.Error()
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return domain.Document{}, "empty file"
	}

	id, err := filepath.Rel(root, path)
	if err != nil {
		id = path
	}
	id = filepath.ToSlash(id)

	return domain.Document{
		ID:      id,
		Path:    path,
		Content: text,
	}, ""
}
