package domain

// Document represents a single corpus file loaded for indexing.
// Documents exist only for the duration of an index build; they are
// chunked immediately and never persisted themselves.
type Document struct {
	// ID is the stable identifier for the document (path relative to
	// the corpus root).
	ID string

	// Path is the absolute location on disk the content was read from.
	Path string

	// Content is the full text content of the document.
	Content string
}

// Chunk is a contiguous window of a document's text, the unit of
// retrieval. Offsets are character positions into the original
// document content.
type Chunk struct {
	// SourceID is the ID of the document this chunk was cut from.
	SourceID string `json:"source_id"`

	// Sequence is the zero-based position of the chunk within its
	// document.
	Sequence int `json:"sequence_index"`

	// StartOffset is the character offset where the chunk begins.
	// Within one document, StartOffset never decreases from one chunk
	// to the next.
	StartOffset int `json:"start_offset"`

	// EndOffset is the character offset just past the end of the
	// chunk. It never exceeds the document length.
	EndOffset int `json:"end_offset"`

	// Text is the chunk content.
	Text string `json:"text"`
}
