package activity

import (
	"context"
)

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListByAgency(ctx context.Context, agencyID string, filters *ListFilters) ([]Entry, int64, error)
}

// Sink records an activity entry and fans it out to any live listeners.
// Implementations must treat Record as fire-and-forget from the caller's
// perspective: a failed write is the sink's problem to report, not the
// caller's to compensate for.
type Sink interface {
	Record(ctx context.Context, agencyID, subAccountID, description string) error
}
