// Package chunker splits document text into overlapping windows with
// exact character offsets into the original document.
package chunker

import (
	"strings"
	"unicode"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// Splitter cuts text into chunks of at most Size characters, where
// each chunk after the first begins with the trailing Overlap
// characters of its predecessor. Cut points prefer sentence ends,
// then word ends, then raw character positions, so the concatenation
// of all chunks with each overlap prefix removed reproduces the input
// exactly.
type Splitter struct {
	size    int
	overlap int
}

// New creates a splitter. It fails with domain.ErrInvalidChunking
// unless 0 <= overlap < size and size > 0.
func New(params domain.ChunkingParams) (*Splitter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Splitter{size: params.Size, overlap: params.Overlap}, nil
}

// Size returns the configured chunk window in characters.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the configured overlap in characters.
func (s *Splitter) Overlap() int { return s.overlap }

// Split chunks the document content. Offsets on the returned chunks
// are rune positions into doc.Content. Empty or whitespace-only
// content yields no chunks.
func (s *Splitter) Split(doc domain.Document) ([]domain.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	runes := []rune(doc.Content)
	n := len(runes)

	var chunks []domain.Chunk
	start := 0
	for start < n {
		end := s.cutPoint(runes, start)

		chunks = append(chunks, domain.Chunk{
			SourceID:    doc.ID,
			Sequence:    len(chunks),
			StartOffset: start,
			EndOffset:   end,
			Text:        string(runes[start:end]),
		})

		if end == n {
			break
		}
		start = end - s.overlap
	}

	return chunks, nil
}

// cutPoint chooses where the chunk starting at start ends. The cut
// must land in (start+overlap, start+size] so the next chunk, seeded
// with the trailing overlap characters, still advances through the
// text.
func (s *Splitter) cutPoint(runes []rune, start int) int {
	n := len(runes)
	limit := start + s.size
	if limit >= n {
		return n
	}
	floor := start + s.overlap

	if cut := lastBoundary(runes, floor, limit, sentenceEnd); cut > floor {
		return cut
	}
	if cut := lastBoundary(runes, floor, limit, wordEnd); cut > floor {
		return cut
	}
	// Degenerate: a single token longer than the window. Cut at the
	// raw character limit rather than truncating anything.
	return limit
}

// boundaryFunc reports whether position i (the index a new chunk
// would start at) is an acceptable cut of its kind.
type boundaryFunc func(runes []rune, i int) bool

// lastBoundary returns the rightmost cut in (floor, limit] accepted
// by f, or floor when there is none.
func lastBoundary(runes []rune, floor, limit int, f boundaryFunc) int {
	for i := limit; i > floor; i-- {
		if f(runes, i) {
			return i
		}
	}
	return floor
}

// sentenceEnd accepts a cut just after a whitespace run that follows
// sentence-final punctuation.
func sentenceEnd(runes []rune, i int) bool {
	if !wordEnd(runes, i) {
		return false
	}
	// Walk left over the whitespace run to the punctuation.
	j := i - 1
	for j >= 0 && unicode.IsSpace(runes[j]) {
		j--
	}
	if j < 0 {
		return false
	}
	switch runes[j] {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// wordEnd accepts a cut between a whitespace rune and a
// non-whitespace rune, so the next chunk starts at a word start.
func wordEnd(runes []rune, i int) bool {
	if i <= 0 || i >= len(runes) {
		return false
	}
	return unicode.IsSpace(runes[i-1]) && !unicode.IsSpace(runes[i])
}
