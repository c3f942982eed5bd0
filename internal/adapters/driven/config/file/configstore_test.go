package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("test_key", "test_value")
	require.NoError(t, err)

	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("int_key", 42))

	assert.Equal(t, "", store.GetString("int_key"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("routing.mean_threshold", 0.55))

	assert.Equal(t, 0.55, store.GetFloat("routing.mean_threshold"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", reopened.GetString("embedding.model"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	content := "[embedding]\nprovider = \"openai\"\nmodel = \"text-embedding-3-small\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "openai", store.GetString("embedding.provider"))
	assert.Equal(t, "text-embedding-3-small", store.GetString("embedding.model"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("generation.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSettings_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	embed := EmbeddingSettings(store)
	assert.Equal(t, domain.AIProviderOllama, embed.Provider)

	gen := GenerationSettings(store)
	assert.Equal(t, domain.AIProviderOllama, gen.Provider)

	assert.Equal(t, domain.DefaultThresholds(), Thresholds(store))
	assert.Equal(t, domain.DefaultChunkSize, Chunking(store).Size)
	assert.Equal(t, domain.DefaultOverlap, Chunking(store).Overlap)
	assert.Equal(t, domain.DefaultTopK, TopK(store))
	assert.Equal(t, domain.DefaultMaxAnswerTokens, MaxTokens(store))
	assert.Equal(t, domain.PromptPortuguese, Language(store))
}

func TestSettings_Overrides(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyEmbeddingProvider, "openai"))
	require.NoError(t, store.Set(KeyEmbeddingAPIKey, "sk-test"))
	require.NoError(t, store.Set(KeyMeanThreshold, 0.6))
	require.NoError(t, store.Set(KeyChunkSize, 400))
	require.NoError(t, store.Set(KeyPromptLanguage, "en"))

	embed := EmbeddingSettings(store)
	assert.Equal(t, domain.AIProviderOpenAI, embed.Provider)
	assert.True(t, embed.IsConfigured())

	assert.Equal(t, 0.6, Thresholds(store).Mean)
	assert.Equal(t, domain.DefaultMinThreshold, Thresholds(store).Min)
	assert.Equal(t, 400, Chunking(store).Size)
	assert.Equal(t, domain.PromptEnglish, Language(store))
}
