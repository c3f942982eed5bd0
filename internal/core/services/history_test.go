package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

func TestHistoryRecorder_Record(t *testing.T) {
	store := &mockHistoryStore{}
	rec := NewHistoryRecorder(store)
	frozen := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return frozen }

	answer := domain.Answer{
		Text: "the answer",
		Routing: domain.RoutingDecision{
			Route:       domain.RouteGrounded,
			MeanScore:   0.8,
			MinScore:    0.7,
			ResultCount: 2,
		},
		Topic: "pricing",
		Results: []domain.RetrievalResult{
			{Chunk: domain.Chunk{SourceID: "a.txt", Sequence: 3}, Ordinal: 7, Score: 0.9},
			{Chunk: domain.Chunk{SourceID: "b.txt", Sequence: 0}, Ordinal: 2, Score: 0.7},
		},
	}

	err := rec.Record(context.Background(), "what does it cost?", answer)

	require.NoError(t, err)
	require.Len(t, store.records, 1)

	got := store.records[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, frozen, got.Timestamp)
	assert.Equal(t, "what does it cost?", got.Question)
	assert.Equal(t, "the answer", got.Answer)
	assert.Equal(t, answer.Routing, got.Routing)
	assert.Equal(t, "pricing", got.Topic)
	require.Len(t, got.Retrieved, 2)
	assert.Equal(t, domain.RetrievedSource{SourceID: "a.txt", Sequence: 3, Score: 0.9}, got.Retrieved[0])
	assert.Equal(t, domain.RetrievedSource{SourceID: "b.txt", Sequence: 0, Score: 0.7}, got.Retrieved[1])
}

func TestHistoryRecorder_UniqueIDs(t *testing.T) {
	store := &mockHistoryStore{}
	rec := NewHistoryRecorder(store)

	ctx := context.Background()
	require.NoError(t, rec.Record(ctx, "q1", domain.Answer{Text: "a1"}))
	require.NoError(t, rec.Record(ctx, "q2", domain.Answer{Text: "a2"}))

	assert.NotEqual(t, store.records[0].ID, store.records[1].ID)
}

func TestHistoryRecorder_RecordPropagatesStoreError(t *testing.T) {
	store := &mockHistoryStore{appendErr: errors.New("disk full")}
	rec := NewHistoryRecorder(store)

	err := rec.Record(context.Background(), "q", domain.Answer{Text: "a"})
	assert.Error(t, err)
}

func TestHistoryRecorder_Recent(t *testing.T) {
	store := &mockHistoryStore{}
	rec := NewHistoryRecorder(store)

	ctx := context.Background()
	require.NoError(t, rec.Record(ctx, "first", domain.Answer{Text: "a"}))
	require.NoError(t, rec.Record(ctx, "second", domain.Answer{Text: "b"}))

	records, err := rec.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Question)
}
