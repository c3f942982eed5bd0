package domain

import "time"

// IndexSettings records how an index was built. It is written once
// per successful build alongside the index and metadata, and read
// back before every query to detect embedding-model or dimension
// mismatches before any scores are produced.
type IndexSettings struct {
	// EmbeddingModel is the identifier of the model that produced
	// the indexed vectors.
	EmbeddingModel string `json:"embedding_model"`

	// Dimension is the embedding vector size.
	Dimension int `json:"dimension"`

	// ChunkSize is the chunk window size in characters used at build
	// time.
	ChunkSize int `json:"chunk_size"`

	// Overlap is the chunk overlap in characters used at build time.
	Overlap int `json:"overlap"`

	// BuiltAt is when the build completed.
	BuiltAt time.Time `json:"built_at"`

	// DocsPath is the corpus root the build scanned.
	DocsPath string `json:"docs_path"`

	// SourceCount is the number of documents indexed.
	SourceCount int `json:"source_count"`

	// ChunkCount is the number of chunks (and vectors) indexed.
	ChunkCount int `json:"chunk_count"`
}

// Validate checks the settings describe a usable index.
func (s *IndexSettings) Validate() error {
	if s.EmbeddingModel == "" {
		return ErrIndexIncompatible
	}
	if s.Dimension <= 0 {
		return ErrIndexIncompatible
	}
	return nil
}

// CompatibleWith reports whether a query served by the given encoder
// can be answered against this index.
func (s *IndexSettings) CompatibleWith(model string, dimension int) error {
	if s.Dimension != dimension {
		return &IncompatibilityError{
			Field: "dimension",
			Index: s.Dimension,
			Query: dimension,
		}
	}
	if s.EmbeddingModel != model {
		return &IncompatibilityError{
			Field: "embedding_model",
			Index: s.EmbeddingModel,
			Query: model,
		}
	}
	return nil
}
