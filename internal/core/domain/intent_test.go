package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentTable_Classify(t *testing.T) {
	table := IntentTable{
		{Topic: "enrolment", Keywords: []string{"matrícula", "enrol"}, Suggestion: "see the enrolment guide"},
		{Topic: "pricing", Keywords: []string{"preço", "price"}},
	}

	assert.Equal(t, "enrolment", table.Classify("Como faço a MATRÍCULA?"))
	assert.Equal(t, "pricing", table.Classify("what is the price of the course"))
	assert.Equal(t, "", table.Classify("something else entirely"))

	// First matching rule wins even when a later rule also matches.
	assert.Equal(t, "enrolment", table.Classify("enrol price"))
}

func TestIntentTable_Suggest(t *testing.T) {
	table := IntentTable{
		{Topic: "enrolment", Keywords: []string{"enrol"}, Suggestion: "see the enrolment guide"},
		{Topic: "pricing", Keywords: []string{"price"}},
	}

	assert.Equal(t, "see the enrolment guide", table.Suggest("enrolment"))
	assert.Equal(t, "", table.Suggest("pricing"))
	assert.Equal(t, "", table.Suggest("unknown"))
}

func TestIntentTable_EmptyKeywordNeverMatches(t *testing.T) {
	table := IntentTable{{Topic: "broken", Keywords: []string{""}}}
	assert.Equal(t, "", table.Classify("anything"))
}
