// Package ai constructs embedding and generation services from
// provider settings.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"

	ollamaembed "github.com/icta-labs/lore-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/icta-labs/lore-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/icta-labs/lore-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/icta-labs/lore-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/icta-labs/lore-cli/internal/adapters/driven/llm/openai"
)

// pingTimeout bounds the connectivity check during validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the appropriate embedding service
// based on settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("embedding provider %q is not configured", settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		// Anthropic does not offer an embeddings endpoint.
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateGenerationService creates the appropriate generation service
// based on settings.
func CreateGenerationService(settings domain.GenerationSettings) (driven.GenerationService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("generation provider %q is not configured", settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewGenerationService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewGenerationService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewGenerationService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// verifies it is reachable before returning it.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("embedding provider %s unreachable: %w", settings.Provider, err)
	}
	return svc, nil
}

// CreateAndValidateGenerationService creates a generation service and
// verifies it is reachable before returning it.
func CreateAndValidateGenerationService(settings domain.GenerationSettings) (driven.GenerationService, error) {
	svc, err := CreateGenerationService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("generation provider %s unreachable: %w", settings.Provider, err)
	}
	return svc, nil
}
