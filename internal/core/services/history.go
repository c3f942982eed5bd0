package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
)

// Ensure HistoryRecorder implements the interface.
var _ driving.HistoryService = (*HistoryRecorder)(nil)

// HistoryRecorder turns answered questions into append-only session
// records.
type HistoryRecorder struct {
	store driven.HistoryStore
	now   func() time.Time
}

// NewHistoryRecorder creates a new history recorder.
func NewHistoryRecorder(store driven.HistoryStore) *HistoryRecorder {
	return &HistoryRecorder{
		store: store,
		now:   time.Now,
	}
}

// Record appends one exchange to the session log.
func (h *HistoryRecorder) Record(ctx context.Context, question string, answer domain.Answer) error {
	retrieved := make([]domain.RetrievedSource, 0, len(answer.Results))
	for _, r := range answer.Results {
		retrieved = append(retrieved, domain.RetrievedSource{
			SourceID: r.Chunk.SourceID,
			Sequence: r.Chunk.Sequence,
			Score:    r.Score,
		})
	}

	rec := domain.SessionRecord{
		ID:        uuid.NewString(),
		Timestamp: h.now().UTC(),
		Question:  question,
		Answer:    answer.Text,
		Routing:   answer.Routing,
		Topic:     answer.Topic,
		Retrieved: retrieved,
	}
	return h.store.Append(ctx, rec)
}

// Recent returns up to limit records, newest first.
func (h *HistoryRecorder) Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	return h.store.Recent(ctx, limit)
}
