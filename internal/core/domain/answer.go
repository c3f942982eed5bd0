package domain

// Answer is the full outcome of one question/answer cycle.
type Answer struct {
	// Text is the generated answer, trimmed of surrounding
	// whitespace. Never empty: generation failures are replaced by a
	// static message.
	Text string

	// Routing is the decision that selected the generation path.
	Routing RoutingDecision

	// Topic is the intent tag matched for the question, if any.
	Topic string

	// Suggestion is the canned follow-up for the topic, if any.
	Suggestion string

	// Results are the retrieved passages inspected by the router, in
	// rank order.
	Results []RetrievalResult
}
