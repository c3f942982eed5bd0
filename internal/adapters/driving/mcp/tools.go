package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string `json:"question" jsonschema:"the question to answer from the local corpus"`
	TopK      int    `json:"top_k,omitempty" jsonschema:"how many passages to retrieve (default 5)"`
	MaxTokens int    `json:"max_tokens,omitempty" jsonschema:"maximum answer length in tokens"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string         `json:"answer"`
	Route     string         `json:"route"`
	MeanScore float64        `json:"mean_score"`
	MinScore  float64        `json:"min_score"`
	Topic     string         `json:"topic,omitempty"`
	Sources   []SourceOutput `json:"sources"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the query to match against indexed passages"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []PassageOutput `json:"results"`
	Count   int             `json:"count"`
}

// SourceOutput identifies one consulted passage.
type SourceOutput struct {
	SourceID string  `json:"source_id"`
	Sequence int     `json:"sequence_index"`
	Score    float64 `json:"score"`
}

// PassageOutput is one retrieved passage with its text.
type PassageOutput struct {
	SourceID    string  `json:"source_id"`
	Sequence    int     `json:"sequence_index"`
	StartOffset int     `json:"start_offset"`
	EndOffset   int     `json:"end_offset"`
	Score       float64 `json:"score"`
	Text        string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the indexed local corpus, with grounded/fallback routing",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Retrieve the most similar indexed passages for a query",
	}, s.handleSearch)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Ask(ctx, input.Question, driving.AskOptions{
		TopK:      input.TopK,
		MaxTokens: input.MaxTokens,
	})
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    answer.Text,
		Route:     answer.Routing.Route.String(),
		MeanScore: answer.Routing.MeanScore,
		MinScore:  answer.Routing.MinScore,
		Topic:     answer.Topic,
		Sources:   make([]SourceOutput, len(answer.Results)),
	}
	for i, r := range answer.Results {
		output.Sources[i] = SourceOutput{
			SourceID: r.Chunk.SourceID,
			Sequence: r.Chunk.Sequence,
			Score:    r.Score,
		}
	}
	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Answer.Search(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]PassageOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = PassageOutput{
			SourceID:    r.Chunk.SourceID,
			Sequence:    r.Chunk.Sequence,
			StartOffset: r.Chunk.StartOffset,
			EndOffset:   r.Chunk.EndOffset,
			Score:       r.Score,
			Text:        r.Chunk.Text,
		}
	}
	return nil, output, nil
}
