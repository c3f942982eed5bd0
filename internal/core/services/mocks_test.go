package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

// mockEmbedder returns canned vectors keyed by input text. Unknown
// texts get a deterministic unit vector.
type mockEmbedder struct {
	dim        int
	model      string
	vecs       map[string][]float32
	embedErr   error
	batchErr   error
	batchCalls int
}

func newMockEmbedder(dim int) *mockEmbedder {
	return &mockEmbedder{dim: dim, model: "mock-embed", vecs: map[string][]float32{}}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vecs[text]; ok {
		out := make([]float32, len(v))
		copy(out, v)
		return out
	}
	v := make([]float32, m.dim)
	v[int(text[0])%m.dim] = 1
	return v
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		out = append(out, m.vectorFor(t))
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int               { return m.dim }
func (m *mockEmbedder) ModelName() string             { return m.model }
func (m *mockEmbedder) Ping(ctx context.Context) error { return nil }
func (m *mockEmbedder) Close() error                  { return nil }

// mockGenerator records the last prompt and returns a canned reply.
type mockGenerator struct {
	reply      string
	err        error
	lastPrompt string
	lastOpts   driven.GenerateOptions
	calls      int
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockGenerator) ModelName() string             { return "mock-gen" }
func (m *mockGenerator) Ping(ctx context.Context) error { return nil }
func (m *mockGenerator) Close() error                  { return nil }

// mockCorpus returns a fixed document set.
type mockCorpus struct {
	docs   []domain.Document
	report driven.ScanReport
	err    error
}

func (m *mockCorpus) Scan(ctx context.Context, root string) ([]domain.Document, driven.ScanReport, error) {
	return m.docs, m.report, m.err
}

// memIndex is a brute-force in-memory vector index.
type memIndex struct {
	dim  int
	vecs [][]float32
}

func (i *memIndex) Dimension() int { return i.dim }
func (i *memIndex) Len() int       { return len(i.vecs) }

func (i *memIndex) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != i.dim {
			return fmt.Errorf("dimension mismatch: got %d, want %d", len(v), i.dim)
		}
		i.vecs = append(i.vecs, v)
	}
	return nil
}

func (i *memIndex) Search(query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != i.dim {
		return nil, fmt.Errorf("dimension mismatch: got %d, want %d", len(query), i.dim)
	}
	hits := make([]driven.VectorHit, 0, len(i.vecs))
	for ord, v := range i.vecs {
		score := 0.0
		for j := range v {
			score += float64(v[j]) * float64(query[j])
		}
		hits = append(hits, driven.VectorHit{Ordinal: ord, Score: score})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Ordinal < hits[b].Ordinal
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return hits, nil
}

func (i *memIndex) WriteTo(w io.Writer) (int64, error) { return 0, nil }

// memRepository keeps the persisted triple in memory.
type memRepository struct {
	idx      driven.VectorIndex
	chunks   []domain.Chunk
	settings domain.IndexSettings
	saved    bool
	saveErr  error
	loadErr  error
}

func (r *memRepository) Create(dimension int) (driven.VectorIndex, error) {
	return &memIndex{dim: dimension}, nil
}

func (r *memRepository) Exists() bool { return r.saved }

func (r *memRepository) Save(idx driven.VectorIndex, chunks []domain.Chunk, settings domain.IndexSettings) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if idx.Len() != len(chunks) {
		return fmt.Errorf("index/metadata mismatch: %d vectors, %d chunks", idx.Len(), len(chunks))
	}
	r.idx = idx
	r.chunks = chunks
	r.settings = settings
	r.saved = true
	return nil
}

func (r *memRepository) Load() (driven.VectorIndex, []domain.Chunk, domain.IndexSettings, error) {
	if r.loadErr != nil {
		return nil, nil, domain.IndexSettings{}, r.loadErr
	}
	if !r.saved {
		return nil, nil, domain.IndexSettings{}, domain.ErrIndexNotFound
	}
	return r.idx, r.chunks, r.settings, nil
}

func (r *memRepository) Settings() (domain.IndexSettings, error) {
	if !r.saved {
		return domain.IndexSettings{}, domain.ErrIndexNotFound
	}
	return r.settings, nil
}

// mockHistoryStore captures appended records.
type mockHistoryStore struct {
	records   []domain.SessionRecord
	appendErr error
}

func (m *mockHistoryStore) Append(ctx context.Context, rec domain.SessionRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistoryStore) Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	out := make([]domain.SessionRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockHistoryStore) Close() error { return nil }
