package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agencyhub-service/internal/domain/agency"
	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AgencyRepository struct {
	db *pgxpool.Pool
}

func NewAgencyRepository(db *pgxpool.Pool) *AgencyRepository {
	return &AgencyRepository{db: db}
}

const agencyColumns = `
	id, customer_id, name, company_email, company_phone, white_label,
	address, city, state, zip_code, country, agency_logo, goal,
	connect_account_id, created_at, updated_at
`

// Upsert inserts the agency or refreshes its details when the id exists.
// The goal and connect_account_id columns are left untouched on conflict so
// a details re-submission never resets them.
func (r *AgencyRepository) Upsert(ctx context.Context, a *agency.Agency) (*agency.Agency, error) {
	query := `
		INSERT INTO agencies (
			id, customer_id, name, company_email, company_phone, white_label,
			address, city, state, zip_code, country, agency_logo, goal,
			connect_account_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			name = EXCLUDED.name,
			company_email = EXCLUDED.company_email,
			company_phone = EXCLUDED.company_phone,
			white_label = EXCLUDED.white_label,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			country = EXCLUDED.country,
			agency_logo = EXCLUDED.agency_logo,
			updated_at = NOW()
		RETURNING created_at, updated_at, goal, connect_account_id
	`

	err := r.db.QueryRow(
		ctx, query,
		a.ID, a.CustomerID, a.Name, a.CompanyEmail, a.CompanyPhone, a.WhiteLabel,
		a.Address, a.City, a.State, a.ZipCode, a.Country, a.AgencyLogo, a.Goal,
		a.ConnectAccountID,
	).Scan(&a.CreatedAt, &a.UpdatedAt, &a.Goal, &a.ConnectAccountID)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert agency: %w", err)
	}

	return a, nil
}

// Update applies a validated details payload to an existing agency.
func (r *AgencyRepository) Update(ctx context.Context, id string, d *agency.DetailsInput) (*agency.Agency, error) {
	query := fmt.Sprintf(`
		UPDATE agencies
		SET name = $1, company_email = $2, company_phone = $3, white_label = $4,
		    address = $5, city = $6, state = $7, zip_code = $8, country = $9,
		    agency_logo = $10, updated_at = $11
		WHERE id = $12
		RETURNING %s
	`, agencyColumns)

	var a agency.Agency
	err := r.db.QueryRow(
		ctx, query,
		d.Name, d.CompanyEmail, d.CompanyPhone, d.WhiteLabel,
		d.Address, d.City, d.State, d.Zip, d.Country,
		d.AgencyLogo, time.Now(), id,
	).Scan(
		&a.ID, &a.CustomerID, &a.Name, &a.CompanyEmail, &a.CompanyPhone, &a.WhiteLabel,
		&a.Address, &a.City, &a.State, &a.ZipCode, &a.Country, &a.AgencyLogo, &a.Goal,
		&a.ConnectAccountID, &a.CreatedAt, &a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update agency: %w", err)
	}

	return &a, nil
}

// UpdateGoal sets the sub-account goal for an agency.
func (r *AgencyRepository) UpdateGoal(ctx context.Context, id string, goal int) error {
	query := `UPDATE agencies SET goal = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, goal, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete removes the agency and its sub-accounts in one transaction.
func (r *AgencyRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM sub_accounts WHERE agency_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete sub-accounts: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agency: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return tx.Commit(ctx)
}

// FindByID retrieves an agency by ID
func (r *AgencyRepository) FindByID(ctx context.Context, id string) (*agency.Agency, error) {
	query := fmt.Sprintf(`SELECT %s FROM agencies WHERE id = $1`, agencyColumns)

	var a agency.Agency
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CustomerID, &a.Name, &a.CompanyEmail, &a.CompanyPhone, &a.WhiteLabel,
		&a.Address, &a.City, &a.State, &a.ZipCode, &a.Country, &a.AgencyLogo, &a.Goal,
		&a.ConnectAccountID, &a.CreatedAt, &a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find agency: %w", err)
	}

	return &a, nil
}
