// Package jsonl persists session records as append-only JSON lines.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// maxRecordBytes bounds a single history line on read.
const maxRecordBytes = 4 * 1024 * 1024

// Store appends session records to a JSONL file, one record per line.
// The file is opened per append so an interrupted process never holds
// it, and a mutex serialises concurrent appends.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a JSONL history store. If dataDir is empty,
// defaults to ~/.lore/data/sessions.jsonl. The file itself is created
// on first append.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lore", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{path: filepath.Join(dataDir, "sessions.jsonl")}, nil
}

// Append writes one record as a single JSON line. Existing lines are
// never touched.
func (s *Store) Append(ctx context.Context, rec domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending session record: %w", err)
	}
	return f.Sync()
}

// Recent returns up to limit records, newest first. A missing file
// means an empty history, not an error.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	var records []domain.SessionRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec domain.SessionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decoding session record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	// File order is oldest first; reverse for newest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close releases resources. The JSONL store holds none between calls.
func (s *Store) Close() error {
	return nil
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}
