package domain

import "time"

// RetrievedSource is the minimal provenance kept for one retrieved
// chunk on a session record.
type RetrievedSource struct {
	// SourceID is the document the chunk came from.
	SourceID string `json:"source_id"`

	// Sequence is the chunk position within the document.
	Sequence int `json:"sequence_index"`

	// Score is the similarity score at answer time.
	Score float64 `json:"score"`
}

// SessionRecord is one question/answer exchange. Records are
// append-only: once written they are never mutated.
type SessionRecord struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// Timestamp is when the answer was produced.
	Timestamp time.Time `json:"ts"`

	// Question is the user's question verbatim.
	Question string `json:"question"`

	// Answer is the generated answer verbatim.
	Answer string `json:"answer"`

	// Routing is the decision that selected the generation path.
	Routing RoutingDecision `json:"routing"`

	// Topic is the intent tag matched for the question, if any.
	// Informational only; it never influences routing.
	Topic string `json:"topic,omitempty"`

	// Retrieved lists the sources consulted, in rank order.
	Retrieved []RetrievedSource `json:"retrieved"`
}
