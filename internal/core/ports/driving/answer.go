package driving

import (
	"context"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// AskOptions configures one question/answer cycle.
type AskOptions struct {
	// TopK is how many passages to retrieve. Zero means the
	// deployment default.
	TopK int

	// MaxTokens caps the generated answer length. Zero means the
	// deployment default.
	MaxTokens int
}

// AnswerService answers free-text questions against the persisted
// index.
type AnswerService interface {
	// Ask retrieves passages for the question, routes between the
	// grounded and fallback generation paths, and returns the answer.
	// It fails with domain.ErrIndexIncompatible when the persisted
	// index cannot serve the current encoder.
	Ask(ctx context.Context, question string, opts AskOptions) (domain.Answer, error)

	// Search performs retrieval only, without generation.
	Search(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error)
}
