// Package tui provides the interactive chat interface for lore.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the chat.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions against the index.
	Answer driving.AnswerService

	// History records exchanges. Optional; chat works without it.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	return nil
}
