package domain

import "strings"

// IntentRule maps a keyword set to a topic tag. Matching is a pure
// lookup: the first rule with any keyword present in the question
// wins. Intent tags are informational (session records, topic
// suggestions in chat) and are kept strictly out of the
// grounded/fallback routing decision.
type IntentRule struct {
	// Topic is the tag assigned when the rule matches.
	Topic string

	// Keywords are matched case-insensitively as substrings.
	Keywords []string

	// Suggestion is an optional canned follow-up shown in chat.
	Suggestion string
}

// IntentTable is an ordered list of intent rules.
type IntentTable []IntentRule

// Classify returns the topic of the first matching rule, or the
// empty string when nothing matches.
func (t IntentTable) Classify(question string) string {
	q := strings.ToLower(question)
	for _, rule := range t {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				return rule.Topic
			}
		}
	}
	return ""
}

// Suggest returns the canned suggestion for a topic, or the empty
// string when the topic has none.
func (t IntentTable) Suggest(topic string) string {
	for _, rule := range t {
		if rule.Topic == topic {
			return rule.Suggestion
		}
	}
	return ""
}
