package file

import (
	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyGenerationProvider = "generation.provider"
	KeyGenerationModel    = "generation.model"
	KeyGenerationBaseURL  = "generation.base_url"
	KeyGenerationAPIKey   = "generation.api_key"

	KeyMeanThreshold = "routing.mean_threshold"
	KeyMinThreshold  = "routing.min_threshold"

	KeyChunkSize = "chunking.size"
	KeyOverlap   = "chunking.overlap"

	KeyTopK      = "retrieval.top_k"
	KeyMaxTokens = "answer.max_tokens"

	KeyPromptLanguage = "prompt.language"
	KeyHistoryBackend = "history.backend"
	KeyDocsPath       = "docs.path"
)

// EmbeddingSettings assembles embedding provider settings from the
// store, defaulting to a local Ollama instance.
func EmbeddingSettings(store driven.ConfigStore) domain.EmbeddingSettings {
	provider := store.GetString(KeyEmbeddingProvider)
	if provider == "" {
		provider = domain.AIProviderOllama.String()
	}
	return domain.EmbeddingSettings{
		Provider: domain.AIProvider(provider),
		Model:    store.GetString(KeyEmbeddingModel),
		BaseURL:  store.GetString(KeyEmbeddingBaseURL),
		APIKey:   store.GetString(KeyEmbeddingAPIKey),
	}
}

// GenerationSettings assembles generation provider settings from the
// store, defaulting to a local Ollama instance.
func GenerationSettings(store driven.ConfigStore) domain.GenerationSettings {
	provider := store.GetString(KeyGenerationProvider)
	if provider == "" {
		provider = domain.AIProviderOllama.String()
	}
	return domain.GenerationSettings{
		Provider: domain.AIProvider(provider),
		Model:    store.GetString(KeyGenerationModel),
		BaseURL:  store.GetString(KeyGenerationBaseURL),
		APIKey:   store.GetString(KeyGenerationAPIKey),
	}
}

// Thresholds reads routing thresholds from the store, falling back to
// the deployment defaults when unset.
func Thresholds(store driven.ConfigStore) domain.Thresholds {
	t := domain.DefaultThresholds()
	if v := store.GetFloat(KeyMeanThreshold); v > 0 {
		t.Mean = v
	}
	if v := store.GetFloat(KeyMinThreshold); v > 0 {
		t.Min = v
	}
	return t
}

// Chunking reads chunking parameters from the store, falling back to
// the defaults when unset.
func Chunking(store driven.ConfigStore) domain.ChunkingParams {
	p := domain.ChunkingParams{
		Size:    domain.DefaultChunkSize,
		Overlap: domain.DefaultOverlap,
	}
	if v := store.GetInt(KeyChunkSize); v > 0 {
		p.Size = v
	}
	if v := store.GetInt(KeyOverlap); v > 0 {
		p.Overlap = v
	}
	return p
}

// TopK reads the retrieval depth from the store.
func TopK(store driven.ConfigStore) int {
	if v := store.GetInt(KeyTopK); v > 0 {
		return v
	}
	return domain.DefaultTopK
}

// MaxTokens reads the answer length cap from the store.
func MaxTokens(store driven.ConfigStore) int {
	if v := store.GetInt(KeyMaxTokens); v > 0 {
		return v
	}
	return domain.DefaultMaxAnswerTokens
}

// Language reads the prompt language from the store. Unrecognised
// values fall back to Portuguese.
func Language(store driven.ConfigStore) domain.PromptLanguage {
	lang := domain.PromptLanguage(store.GetString(KeyPromptLanguage))
	if !lang.IsValid() {
		return domain.PromptPortuguese
	}
	return lang
}
