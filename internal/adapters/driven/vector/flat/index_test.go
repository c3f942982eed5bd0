package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidDimension(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)

	_, err = New(-3)
	assert.Error(t, err)
}

func TestIndex_AddAndLen(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	require.NoError(t, idx.Add([]float32{1, 0, 0}, []float32{0, 1, 0}))
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 3, idx.Dimension())
}

func TestIndex_AddDimensionMismatch(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)

	err = idx.Add([]float32{1, 0, 0}, []float32{1, 0})
	assert.Error(t, err)
	// A rejected batch must not be partially applied.
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_SearchSelfSimilarity(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)
	require.NoError(t, idx.Add(
		[]float32{1, 0, 0},
		[]float32{0, 1, 0},
		[]float32{0, 0, 1},
	))

	hits, err := idx.Search([]float32{0, 1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 1, hits[0].Ordinal)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestIndex_SearchTieBreaksByOrdinal(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)
	// Identical vectors score identically against any query.
	require.NoError(t, idx.Add(
		[]float32{0.6, 0.8},
		[]float32{0.6, 0.8},
		[]float32{0.6, 0.8},
	))

	hits, err := idx.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Ordinal)
	assert.Equal(t, 1, hits[1].Ordinal)
	assert.Equal(t, 2, hits[2].Ordinal)
}

func TestIndex_SearchKClamped(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add([]float32{1, 0}, []float32{0, 1}))

	hits, err := idx.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndex_SearchEmptyIndex(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)

	hits, err := idx.Search([]float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_SearchBadInput(t *testing.T) {
	idx, err := New(3)
	require.NoError(t, err)
	require.NoError(t, idx.Add([]float32{1, 0, 0}))

	_, err = idx.Search([]float32{1, 0}, 1)
	assert.Error(t, err)

	_, err = idx.Search([]float32{1, 0, 0}, 0)
	assert.Error(t, err)
}

func TestIndex_SearchDescendingScores(t *testing.T) {
	idx, err := New(2)
	require.NoError(t, err)
	require.NoError(t, idx.Add(
		[]float32{0.2, 0.9},
		[]float32{1, 0},
		[]float32{0.7, 0.7},
	))

	hits, err := idx.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 1, hits[0].Ordinal)
	assert.Equal(t, 2, hits[1].Ordinal)
	assert.Equal(t, 0, hits[2].Ordinal)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}
