package dir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

func testSettings() domain.IndexSettings {
	return domain.IndexSettings{
		EmbeddingModel: "nomic-embed-text",
		Dimension:      3,
		ChunkSize:      500,
		Overlap:        50,
		BuiltAt:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DocsPath:       "/docs",
		SourceCount:    1,
		ChunkCount:     2,
	}
}

func buildIndex(t *testing.T, repo *Repository, vectors ...[]float32) driven.VectorIndex {
	t.Helper()
	idx, err := repo.Create(3)
	require.NoError(t, err)
	require.NoError(t, idx.Add(vectors...))
	return idx
}

func testChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			SourceID:    "guide.md",
			Sequence:    i,
			StartOffset: i * 10,
			EndOffset:   i*10 + 10,
			Text:        strings.Repeat("x", 10),
		}
	}
	return chunks
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	idx := buildIndex(t, repo, []float32{1, 0, 0}, []float32{0, 1, 0})
	settings := testSettings()

	require.False(t, repo.Exists())
	require.NoError(t, repo.Save(idx, testChunks(2), settings))
	require.True(t, repo.Exists())

	loaded, chunks, got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, 3, loaded.Dimension())
	require.Len(t, chunks, 2)
	assert.Equal(t, "guide.md", chunks[0].SourceID)
	assert.Equal(t, 1, chunks[1].Sequence)
	assert.Equal(t, settings.EmbeddingModel, got.EmbeddingModel)
	assert.True(t, settings.BuiltAt.Equal(got.BuiltAt))

	hits, err := loaded.Search([]float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Ordinal)
}

func TestRepository_LoadMissing(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	_, _, _, err = repo.Load()
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)

	_, err = repo.Settings()
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)
}

func TestRepository_SaveRejectsLengthMismatch(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	idx := buildIndex(t, repo, []float32{1, 0, 0}, []float32{0, 1, 0})

	err = repo.Save(idx, testChunks(3), testSettings())
	assert.Error(t, err)
	assert.False(t, repo.Exists())
}

func TestRepository_SaveReplacesPreviousIndex(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	first := buildIndex(t, repo, []float32{1, 0, 0})
	require.NoError(t, repo.Save(first, testChunks(1), testSettings()))

	second := buildIndex(t, repo, []float32{1, 0, 0}, []float32{0, 1, 0}, []float32{0, 0, 1})
	settings := testSettings()
	settings.ChunkCount = 3
	require.NoError(t, repo.Save(second, testChunks(3), settings))

	loaded, chunks, got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Len())
	assert.Len(t, chunks, 3)
	assert.Equal(t, 3, got.ChunkCount)
}

func TestRepository_FailedSaveLeavesPreviousIndexIntact(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	first := buildIndex(t, repo, []float32{1, 0, 0})
	require.NoError(t, repo.Save(first, testChunks(1), testSettings()))

	before := readTriple(t, repo.Root())

	// A rejected build must not disturb the live triple.
	bad := buildIndex(t, repo, []float32{1, 0, 0}, []float32{0, 1, 0})
	require.Error(t, repo.Save(bad, testChunks(1), testSettings()))

	after := readTriple(t, repo.Root())
	assert.Equal(t, before, after)

	// No staging leftovers either.
	_, err = os.Stat(filepath.Join(repo.Root(), "index.staging"))
	assert.True(t, os.IsNotExist(err))
}

// readTriple returns the raw bytes of every file in the live index
// directory, keyed by name.
func readTriple(t *testing.T, root string) map[string][]byte {
	t.Helper()

	live := filepath.Join(root, "index")
	entries, err := os.ReadDir(live)
	require.NoError(t, err)

	files := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(live, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = data
	}
	return files
}

func TestRepository_PartialTripleIsNotAnIndex(t *testing.T) {
	root := t.TempDir()
	repo, err := NewRepository(root)
	require.NoError(t, err)

	idx := buildIndex(t, repo, []float32{1, 0, 0})
	require.NoError(t, repo.Save(idx, testChunks(1), testSettings()))

	require.NoError(t, os.Remove(filepath.Join(root, "index", "meta.jsonl")))

	assert.False(t, repo.Exists())
	_, _, _, err = repo.Load()
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)
}

func TestRepository_LoadRejectsOrdinalGap(t *testing.T) {
	root := t.TempDir()
	repo, err := NewRepository(root)
	require.NoError(t, err)

	idx := buildIndex(t, repo, []float32{1, 0, 0}, []float32{0, 1, 0})
	require.NoError(t, repo.Save(idx, testChunks(2), testSettings()))

	metaPath := filepath.Join(root, "index", "meta.jsonl")
	data, err := os.ReadFile(metaPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	// Drop the first record so the surviving ordinal no longer
	// matches its line position.
	require.NoError(t, os.WriteFile(metaPath, []byte(lines[1]+"\n"), 0o600))

	_, _, _, err = repo.Load()
	assert.ErrorContains(t, err, "ordinal")
}

func TestRepository_LoadRejectsCountMismatch(t *testing.T) {
	root := t.TempDir()
	repo, err := NewRepository(root)
	require.NoError(t, err)

	idx := buildIndex(t, repo, []float32{1, 0, 0}, []float32{0, 1, 0})
	require.NoError(t, repo.Save(idx, testChunks(2), testSettings()))

	metaPath := filepath.Join(root, "index", "meta.jsonl")
	data, err := os.ReadFile(metaPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.NoError(t, os.WriteFile(metaPath, []byte(lines[0]+"\n"), 0o600))

	_, _, _, err = repo.Load()
	assert.ErrorContains(t, err, "vectors")
}

func TestRepository_SettingsOnly(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	idx := buildIndex(t, repo, []float32{1, 0, 0})
	require.NoError(t, repo.Save(idx, testChunks(1), testSettings()))

	got, err := repo.Settings()
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", got.EmbeddingModel)
	assert.Equal(t, 3, got.Dimension)
}
