// Package flat provides an exact inner-product vector index with
// order-preserving inserts and a binary on-disk codec. For unit
// vectors the inner product equals cosine similarity, so a flat scan
// gives exact nearest-neighbour results without approximation.
package flat

import (
	"errors"
	"sort"
	"sync"

	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores vectors contiguously in insertion order. Ordinals are
// insertion positions; they are never reused or reordered, which is
// what keeps the index aligned with the metadata store.
type Index struct {
	mu        sync.RWMutex
	dimension int
	// data holds all vectors back to back: vector i occupies
	// data[i*dimension : (i+1)*dimension].
	data []float32
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, errors.New("flat: dimension must be positive")
	}
	return &Index{dimension: dimension}, nil
}

// Dimension returns the vector size the index was created with.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.data) / idx.dimension
}

// Add appends vectors in the given order.
func (idx *Index) Add(vectors ...[]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, v := range vectors {
		if len(v) != idx.dimension {
			return errors.New("flat: vector dimension mismatch")
		}
	}
	for _, v := range vectors {
		idx.data = append(idx.data, v...)
	}
	return nil
}

// Search scans all vectors and returns the k best by inner product,
// ordered by descending score with ties broken by ascending ordinal.
// When k exceeds the number of stored vectors, all are returned. An
// empty index returns no hits.
func (idx *Index) Search(query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimension {
		return nil, errors.New("flat: query dimension mismatch")
	}
	if k <= 0 {
		return nil, errors.New("flat: k must be positive")
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	count := len(idx.data) / idx.dimension
	if count == 0 {
		return nil, nil
	}

	hits := make([]driven.VectorHit, count)
	for i := 0; i < count; i++ {
		hits[i] = driven.VectorHit{
			Ordinal: i,
			Score:   dot(idx.data[i*idx.dimension:(i+1)*idx.dimension], query),
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Ordinal < hits[b].Ordinal
	})

	if k > count {
		k = count
	}
	return hits[:k], nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
