package agency

import (
	"context"
)

type Repository interface {
	// Upsert inserts the agency or, when the id already exists, refreshes its
	// details. Idempotent by agency id.
	Upsert(ctx context.Context, a *Agency) (*Agency, error)
	Update(ctx context.Context, id string, details *DetailsInput) (*Agency, error)
	UpdateGoal(ctx context.Context, id string, goal int) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Agency, error)
}
