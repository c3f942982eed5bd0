// Package dir persists the retrieval index as a directory holding
// the (index, metadata, settings) triple. Replacement is atomic: a
// build writes into a staging directory next to the live one and
// swaps it in with a rename, so a crash mid-build leaves the previous
// index byte-for-byte intact.
package dir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/icta-labs/lore-cli/internal/adapters/driven/vector/flat"
	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

// Ensure Repository implements the interface.
var _ driven.IndexRepository = (*Repository)(nil)

// File names inside an index directory.
const (
	indexFile    = "index.bin"
	metaFile     = "meta.jsonl"
	settingsFile = "settings.json"
)

// Repository stores the index triple under <root>/index, staging
// builds in <root>/index.staging.
type Repository struct {
	root string
}

// NewRepository creates a repository rooted at dataDir. If dataDir is
// empty, defaults to ~/.lore/data.
func NewRepository(dataDir string) (*Repository, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lore", "data")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Repository{root: dataDir}, nil
}

// Root returns the data directory path.
func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) liveDir() string    { return filepath.Join(r.root, "index") }
func (r *Repository) stagingDir() string { return filepath.Join(r.root, "index.staging") }

// Create returns a new empty in-memory index of the given dimension.
func (r *Repository) Create(dimension int) (driven.VectorIndex, error) {
	return flat.New(dimension)
}

// Exists reports whether a complete persisted index is present.
func (r *Repository) Exists() bool {
	for _, name := range []string{indexFile, metaFile, settingsFile} {
		if _, err := os.Stat(filepath.Join(r.liveDir(), name)); err != nil {
			return false
		}
	}
	return true
}

// Save atomically replaces the persisted triple. The whole triple is
// written to a staging directory first; only when every file is on
// disk is the staging directory renamed over the live one.
func (r *Repository) Save(idx driven.VectorIndex, chunks []domain.Chunk, settings domain.IndexSettings) error {
	if idx.Len() != len(chunks) {
		return fmt.Errorf("dir: %d vectors but %d metadata records", idx.Len(), len(chunks))
	}

	staging := r.stagingDir()
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clearing staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0o700); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	// Staging is removed on any failure so a half-written build can
	// never be mistaken for a live index.
	defer os.RemoveAll(staging)

	if err := writeIndex(filepath.Join(staging, indexFile), idx); err != nil {
		return err
	}
	if err := writeChunks(filepath.Join(staging, metaFile), chunks); err != nil {
		return err
	}
	if err := writeSettings(filepath.Join(staging, settingsFile), settings); err != nil {
		return err
	}

	live := r.liveDir()
	old := live + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clearing previous index backup: %w", err)
	}
	if _, err := os.Stat(live); err == nil {
		if err := os.Rename(live, old); err != nil {
			return fmt.Errorf("moving previous index aside: %w", err)
		}
	}
	if err := os.Rename(staging, live); err != nil {
		// Put the previous index back so a failed swap is harmless.
		if _, statErr := os.Stat(old); statErr == nil {
			_ = os.Rename(old, live)
		}
		return fmt.Errorf("swapping in new index: %w", err)
	}
	_ = os.RemoveAll(old)
	return nil
}

// Load reads the persisted triple back.
func (r *Repository) Load() (driven.VectorIndex, []domain.Chunk, domain.IndexSettings, error) {
	if !r.Exists() {
		return nil, nil, domain.IndexSettings{}, domain.ErrIndexNotFound
	}

	settings, err := readSettings(filepath.Join(r.liveDir(), settingsFile))
	if err != nil {
		return nil, nil, domain.IndexSettings{}, err
	}

	idx, err := readIndex(filepath.Join(r.liveDir(), indexFile))
	if err != nil {
		return nil, nil, domain.IndexSettings{}, err
	}

	chunks, err := readChunks(filepath.Join(r.liveDir(), metaFile))
	if err != nil {
		return nil, nil, domain.IndexSettings{}, err
	}

	if idx.Len() != len(chunks) {
		return nil, nil, domain.IndexSettings{},
			fmt.Errorf("dir: index holds %d vectors but metadata has %d records", idx.Len(), len(chunks))
	}
	return idx, chunks, settings, nil
}

// Settings reads only the settings file.
func (r *Repository) Settings() (domain.IndexSettings, error) {
	settings, err := readSettings(filepath.Join(r.liveDir(), settingsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.IndexSettings{}, domain.ErrIndexNotFound
		}
		return domain.IndexSettings{}, err
	}
	return settings, nil
}

func writeIndex(path string, idx driven.VectorIndex) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer f.Close()

	if _, err := idx.WriteTo(f); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return f.Sync()
}

func readIndex(path string) (driven.VectorIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	idx, err := flat.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return idx, nil
}

func writeSettings(path string, settings domain.IndexSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling settings: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func readSettings(path string) (domain.IndexSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.IndexSettings{}, err
	}
	var settings domain.IndexSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.IndexSettings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return settings, nil
}
