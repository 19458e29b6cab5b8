package mailbox

import (
	"context"

	"github.com/daylightco/finops-reporter/internal/domain"
)

// SnapshotFetcher retrieves the most recent inventory CSV exports from the
// report mailbox, ordered oldest first so the caller can compare last week
// against this week directly.
type SnapshotFetcher interface {
	FetchLatestSnapshots(ctx context.Context, limit int) ([]domain.DatedSnapshot, error)
}
