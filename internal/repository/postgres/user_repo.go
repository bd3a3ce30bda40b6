package postgres

import (
	"context"
	"errors"
	"fmt"

	"agencyhub-service/internal/domain/user"
	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates the user when absent. When the identity already has a row,
// only the mutable profile fields are refreshed; the role survives so a
// repeat onboarding never demotes or re-promotes anyone.
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	query := `
		INSERT INTO users (id, name, email, avatar_url, role, agency_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			avatar_url = EXCLUDED.avatar_url,
			agency_id = COALESCE(EXCLUDED.agency_id, users.agency_id),
			updated_at = NOW()
		RETURNING role, agency_id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		u.ID, u.Name, u.Email, u.AvatarURL, u.Role, u.AgencyID,
	).Scan(&u.Role, &u.AgencyID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return u, nil
}

// FindByID retrieves a user by identity id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, avatar_url, role, agency_id, created_at, updated_at
		FROM users
		%s
	`, where)

	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.Role, &u.AgencyID,
		&u.CreatedAt, &u.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &u, nil
}
