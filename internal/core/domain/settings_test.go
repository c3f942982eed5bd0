package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSettings_Validate(t *testing.T) {
	valid := IndexSettings{EmbeddingModel: "nomic-embed-text", Dimension: 768}
	assert.NoError(t, valid.Validate())

	noModel := IndexSettings{Dimension: 768}
	assert.ErrorIs(t, noModel.Validate(), ErrIndexIncompatible)

	badDim := IndexSettings{EmbeddingModel: "nomic-embed-text", Dimension: 0}
	assert.ErrorIs(t, badDim.Validate(), ErrIndexIncompatible)
}

func TestIndexSettings_CompatibleWith(t *testing.T) {
	s := IndexSettings{EmbeddingModel: "nomic-embed-text", Dimension: 768}

	assert.NoError(t, s.CompatibleWith("nomic-embed-text", 768))

	err := s.CompatibleWith("nomic-embed-text", 384)
	require.Error(t, err)
	var incompat *IncompatibilityError
	require.True(t, errors.As(err, &incompat))
	assert.Equal(t, "dimension", incompat.Field)

	err = s.CompatibleWith("all-minilm", 768)
	require.Error(t, err)
	require.True(t, errors.As(err, &incompat))
	assert.Equal(t, "embedding_model", incompat.Field)
}

func TestChunkingParams_Validate(t *testing.T) {
	cases := []struct {
		name   string
		params ChunkingParams
		ok     bool
	}{
		{"defaults", ChunkingParams{Size: DefaultChunkSize, Overlap: DefaultOverlap}, true},
		{"zero overlap", ChunkingParams{Size: 100, Overlap: 0}, true},
		{"zero size", ChunkingParams{}, false},
		{"negative overlap", ChunkingParams{Size: 100, Overlap: -1}, false},
		{"overlap equals size", ChunkingParams{Size: 100, Overlap: 100}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidChunking)
			}
		})
	}
}

func TestPromptLanguage_IsValid(t *testing.T) {
	assert.True(t, PromptPortuguese.IsValid())
	assert.True(t, PromptEnglish.IsValid())
	assert.False(t, PromptLanguage("").IsValid())
	assert.False(t, PromptLanguage("fr").IsValid())
}
