package driven

import "io"

// VectorIndex provides exact inner-product similarity search over
// L2-normalised embeddings. Vectors are addressed by ordinal: the
// position they were added in. Ordinal i in the index always
// corresponds to record i in the metadata store; every implementation
// must preserve insertion order.
type VectorIndex interface {
	// Dimension returns the vector size the index was created with.
	Dimension() int

	// Len returns the number of stored vectors.
	Len() int

	// Add appends vectors in the given order. Ordinals are assigned
	// sequentially from the current length.
	Add(vectors ...[]float32) error

	// Search returns the k nearest vectors by inner product, ordered
	// by descending score. Ties are broken by ascending ordinal. When
	// k exceeds Len, all entries are returned. An empty index returns
	// no hits.
	Search(query []float32, k int) ([]VectorHit, error)

	// WriteTo serialises the index to w.
	WriteTo(w io.Writer) (int64, error)
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Ordinal is the matched vector's insertion position.
	Ordinal int

	// Score is the inner product with the query (cosine similarity
	// for unit vectors).
	Score float64
}
