package domain

// RetrievalResult is a single ranked hit from a similarity search.
type RetrievalResult struct {
	// Chunk is the retrieved passage.
	Chunk Chunk

	// Ordinal is the chunk's position in the persisted index.
	Ordinal int

	// Score is the cosine similarity between the query and the chunk
	// embedding. With normalised text embeddings it falls in [0, 1]
	// in practice.
	Score float64
}

// Route identifies which answer-generation path was taken.
type Route string

const (
	// RouteGrounded means the answer was generated strictly from
	// retrieved excerpts.
	RouteGrounded Route = "grounded"

	// RouteFallback means retrieval quality was insufficient and a
	// context-free answer was generated instead.
	RouteFallback Route = "fallback"
)

// IsValid returns true if the route is recognised.
func (r Route) IsValid() bool {
	return r == RouteGrounded || r == RouteFallback
}

// String returns the string representation.
func (r Route) String() string {
	return string(r)
}

// RoutingDecision is the outcome of the answer router together with
// the aggregate retrieval statistics that produced it.
type RoutingDecision struct {
	// Route is the selected generation path.
	Route Route `json:"route"`

	// MeanScore is the average similarity over the retrieved set.
	// Zero when no results were retrieved.
	MeanScore float64 `json:"mean_score"`

	// MinScore is the lowest similarity in the retrieved set.
	// Zero when no results were retrieved.
	MinScore float64 `json:"min_score"`

	// ResultCount is the number of retrieved results inspected.
	ResultCount int `json:"result_count"`
}
