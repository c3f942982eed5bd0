package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

func sampleRecord(id, question string) domain.SessionRecord {
	return domain.SessionRecord{
		ID:        id,
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Question:  question,
		Answer:    "an answer",
		Routing: domain.RoutingDecision{
			Route:       domain.RouteGrounded,
			MeanScore:   0.82,
			MinScore:    0.74,
			ResultCount: 3,
		},
		Retrieved: []domain.RetrievedSource{
			{SourceID: "guides/intro.md", Sequence: 0, Score: 0.9},
		},
	}
}

func TestStore_AppendAndRecent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, sampleRecord("a", "first")))
	require.NoError(t, store.Append(ctx, sampleRecord("b", "second")))
	require.NoError(t, store.Append(ctx, sampleRecord("c", "third")))

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "third", records[0].Question)
	assert.Equal(t, "second", records[1].Question)
}

func TestStore_RecentEmpty(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_OneJSONObjectPerLine(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, sampleRecord("a", "first")))
	require.NoError(t, store.Append(ctx, sampleRecord("b", "second")))

	f, err := os.Open(store.Path())
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec domain.SessionRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		lines++
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 2, lines)
}

func TestStore_AppendDoesNotRewriteExistingLines(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, sampleRecord("a", "first")))

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, sampleRecord("b", "second")))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after[:len(before)]))
}

func TestStore_RoundTripsRoutingAndSources(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	rec := sampleRecord("a", "what is lore?")
	rec.Topic = "enrolment"
	require.NoError(t, store.Append(ctx, rec))

	records, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Routing, records[0].Routing)
	assert.Equal(t, rec.Retrieved, records[0].Retrieved)
	assert.Equal(t, "enrolment", records[0].Topic)
	assert.True(t, rec.Timestamp.Equal(records[0].Timestamp))
}
