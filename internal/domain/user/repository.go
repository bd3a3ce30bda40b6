package user

import (
	"context"
)

type Repository interface {
	// Upsert creates the user when absent and is a no-op on the role and
	// identity fields when the user already exists. Keyed by identity id.
	Upsert(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
