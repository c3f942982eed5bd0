package mcp

import (
	"context"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer  domain.Answer
	results []domain.RetrievalResult
	err     error

	lastQuestion string
	lastOpts     driving.AskOptions
	lastTopK     int
}

func (m *mockAnswerService) Ask(_ context.Context, question string, opts driving.AskOptions) (domain.Answer, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	return m.answer, m.err
}

func (m *mockAnswerService) Search(_ context.Context, _ string, topK int) ([]domain.RetrievalResult, error) {
	m.lastTopK = topK
	return m.results, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.SessionRecord
	err     error
}

func (m *mockHistoryService) Record(_ context.Context, _ string, _ domain.Answer) error {
	return m.err
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.SessionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.records) > limit {
		return m.records[:limit], nil
	}
	return m.records, nil
}
