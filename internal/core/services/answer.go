package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
	"github.com/icta-labs/lore-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerConfig holds the fixed answering parameters.
type AnswerConfig struct {
	// Thresholds are the grounding thresholds. Zero values mean the
	// deployment defaults.
	Thresholds domain.Thresholds

	// Language selects the prompt language (default Portuguese).
	Language domain.PromptLanguage

	// TopK is the default retrieval depth.
	TopK int

	// MaxTokens is the default answer length cap.
	MaxTokens int

	// Intents is the optional topic lookup table.
	Intents domain.IntentTable
}

// AnswerService answers questions against the persisted index,
// routing between grounded and fallback generation.
type AnswerService struct {
	embedder   driven.EmbeddingService
	generator  driven.GenerationService
	repository driven.IndexRepository
	cfg        AnswerConfig

	mu     sync.RWMutex
	loaded bool
	index  driven.VectorIndex
	chunks []domain.Chunk
}

// NewAnswerService creates a new answer service.
func NewAnswerService(
	embedder driven.EmbeddingService,
	generator driven.GenerationService,
	repository driven.IndexRepository,
	cfg AnswerConfig,
) *AnswerService {
	if cfg.Thresholds.Mean == 0 && cfg.Thresholds.Min == 0 {
		cfg.Thresholds = domain.DefaultThresholds()
	}
	if !cfg.Language.IsValid() {
		cfg.Language = domain.PromptPortuguese
	}
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = domain.DefaultMaxAnswerTokens
	}
	return &AnswerService{
		embedder:   embedder,
		generator:  generator,
		repository: repository,
		cfg:        cfg,
	}
}

// Ask retrieves passages for the question, decides the generation
// path and produces an answer. Retrieval failures surface as errors;
// generation failures degrade to a static message.
func (s *AnswerService) Ask(ctx context.Context, question string, opts driving.AskOptions) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("empty question")
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.cfg.TopK
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.cfg.MaxTokens
	}

	results, err := s.Search(ctx, question, topK)
	if err != nil {
		return domain.Answer{}, err
	}

	decision := routeResults(results, s.cfg.Thresholds)
	logger.Debug("Routing: %s (mean=%.3f min=%.3f n=%d)",
		decision.Route, decision.MeanScore, decision.MinScore, decision.ResultCount)

	var prompt string
	if decision.Route == domain.RouteGrounded {
		prompt = groundedPrompt(s.cfg.Language, results, question)
	} else {
		prompt = fallbackPrompt(s.cfg.Language, question)
	}

	text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: maxTokens})
	if err != nil {
		logger.Warn("Generation failed, substituting static answer: %v", err)
		text = apology(s.cfg.Language)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = apology(s.cfg.Language)
	}

	topic := s.cfg.Intents.Classify(question)
	answer := domain.Answer{
		Text:       text,
		Routing:    decision,
		Topic:      topic,
		Suggestion: s.cfg.Intents.Suggest(topic),
		Results:    results,
	}
	return answer, nil
}

// Search embeds the query and returns the top passages by cosine
// similarity, best first.
func (s *AnswerService) Search(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	idx, chunks, err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	normalizeL2(vec)

	hits, err := idx.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Ordinal < 0 || hit.Ordinal >= len(chunks) {
			return nil, fmt.Errorf("index ordinal %d out of range for %d chunks", hit.Ordinal, len(chunks))
		}
		results = append(results, domain.RetrievalResult{
			Chunk:   chunks[hit.Ordinal],
			Ordinal: hit.Ordinal,
			Score:   hit.Score,
		})
	}
	return results, nil
}

// Invalidate drops the cached index so the next query reloads from
// disk. Called after a rebuild replaces the persisted triple.
func (s *AnswerService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.index = nil
	s.chunks = nil
}

// ensureLoaded loads the persisted index once and verifies it is
// compatible with the current encoder before any scores are
// produced.
func (s *AnswerService) ensureLoaded() (driven.VectorIndex, []domain.Chunk, error) {
	s.mu.RLock()
	if s.loaded {
		idx, chunks := s.index, s.chunks
		s.mu.RUnlock()
		return idx, chunks, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.index, s.chunks, nil
	}

	idx, chunks, settings, err := s.repository.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}
	if err := settings.CompatibleWith(s.embedder.ModelName(), s.embedder.Dimensions()); err != nil {
		return nil, nil, err
	}

	s.index = idx
	s.chunks = chunks
	s.loaded = true
	logger.Debug("Index loaded: %d vectors, dimension %d", idx.Len(), idx.Dimension())
	return idx, chunks, nil
}
