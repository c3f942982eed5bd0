package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/icta-labs/lore-cli/internal/chunker"
	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
	"github.com/icta-labs/lore-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexService = (*IndexerService)(nil)

// embedBatchSize is how many chunk texts are embedded per encoder
// call.
const embedBatchSize = 64

// IndexerService builds the persisted retrieval index from a corpus
// of local documents.
type IndexerService struct {
	corpus     driven.CorpusSource
	embedder   driven.EmbeddingService
	repository driven.IndexRepository
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(
	corpus driven.CorpusSource,
	embedder driven.EmbeddingService,
	repository driven.IndexRepository,
) *IndexerService {
	return &IndexerService{
		corpus:     corpus,
		embedder:   embedder,
		repository: repository,
	}
}

// Build scans the corpus, chunks every document, embeds the chunks
// and atomically replaces the persisted index. Vector ordinal i
// always corresponds to chunk i in the metadata; the repository
// rejects any mismatch at save time.
func (s *IndexerService) Build(ctx context.Context, opts driving.BuildOptions) (domain.IndexSettings, error) {
	logger.Section("Index Build")
	logger.Debug("Corpus root: %s", opts.DocsPath)

	splitter, err := chunker.New(opts.Chunking)
	if err != nil {
		return domain.IndexSettings{}, err
	}

	docs, report, err := s.corpus.Scan(ctx, opts.DocsPath)
	if err != nil {
		return domain.IndexSettings{}, fmt.Errorf("scanning corpus: %w", err)
	}
	for _, skipped := range report.Skipped {
		logger.Warn("Skipping %s: %s", skipped.Path, skipped.Reason)
	}
	logger.Info("Scanned %d files, %d usable documents", report.Scanned, len(docs))

	if len(docs) == 0 {
		return domain.IndexSettings{}, domain.ErrNoDocuments
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		docChunks, err := splitter.Split(doc)
		if err != nil {
			return domain.IndexSettings{}, fmt.Errorf("chunking %s: %w", doc.ID, err)
		}
		chunks = append(chunks, docChunks...)
	}
	if len(chunks) == 0 {
		return domain.IndexSettings{}, domain.ErrNoDocuments
	}
	logger.Info("Produced %d chunks from %d documents", len(chunks), len(docs))

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return domain.IndexSettings{}, err
	}

	idx, err := s.repository.Create(s.embedder.Dimensions())
	if err != nil {
		return domain.IndexSettings{}, fmt.Errorf("creating index: %w", err)
	}
	if err := idx.Add(vectors...); err != nil {
		return domain.IndexSettings{}, fmt.Errorf("adding vectors: %w", err)
	}

	settings := domain.IndexSettings{
		EmbeddingModel: s.embedder.ModelName(),
		Dimension:      s.embedder.Dimensions(),
		ChunkSize:      splitter.Size(),
		Overlap:        splitter.Overlap(),
		BuiltAt:        time.Now().UTC(),
		DocsPath:       opts.DocsPath,
		SourceCount:    len(docs),
		ChunkCount:     len(chunks),
	}

	if err := s.repository.Save(idx, chunks, settings); err != nil {
		return domain.IndexSettings{}, fmt.Errorf("persisting index: %w", err)
	}
	logger.Info("Index built: %d vectors, dimension %d", len(chunks), settings.Dimension)

	return settings, nil
}

// embedChunks encodes all chunk texts in batches, preserving chunk
// order, and L2-normalises every vector so inner product equals
// cosine similarity.
func (s *IndexerService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))

	for batch := 0; batch*embedBatchSize < len(chunks); batch++ {
		lo := batch * embedBatchSize
		hi := lo + embedBatchSize
		if hi > len(chunks) {
			hi = len(chunks)
		}

		texts := make([]string, 0, hi-lo)
		for _, c := range chunks[lo:hi] {
			texts = append(texts, c.Text)
		}

		embedded, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, &domain.EmbeddingError{Batch: batch, Err: err}
		}
		if len(embedded) != len(texts) {
			return nil, &domain.EmbeddingError{
				Batch: batch,
				Err:   fmt.Errorf("got %d vectors for %d texts", len(embedded), len(texts)),
			}
		}

		for _, vec := range embedded {
			normalizeL2(vec)
			vectors = append(vectors, vec)
		}
		logger.Debug("Embedded batch %d (%d chunks)", batch, hi-lo)
	}

	return vectors, nil
}

// normalizeL2 scales vec to unit length in place. Zero vectors are
// left untouched.
func normalizeL2(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
