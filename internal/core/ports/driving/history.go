package driving

import (
	"context"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// HistoryService records and replays question/answer sessions.
type HistoryService interface {
	// Record appends one exchange to the session log. Write failures
	// are reported but must not unwind the conversation loop.
	Record(ctx context.Context, question string, answer domain.Answer) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error)
}
