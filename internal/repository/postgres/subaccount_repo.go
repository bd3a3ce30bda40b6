package postgres

import (
	"context"
	"fmt"

	"agencyhub-service/internal/domain/subaccount"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SubAccountRepository struct {
	db *pgxpool.Pool
}

func NewSubAccountRepository(db *pgxpool.Pool) *SubAccountRepository {
	return &SubAccountRepository{db: db}
}

// Create creates a new sub-account under an agency
func (r *SubAccountRepository) Create(ctx context.Context, s *subaccount.SubAccount) error {
	query := `
		INSERT INTO sub_accounts (id, agency_id, name, company_email, sub_account_logo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		s.ID, s.AgencyID, s.Name, s.CompanyEmail, s.SubAccountLogo,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create sub-account: %w", err)
	}

	return nil
}

// ListByAgency retrieves all sub-accounts of an agency
func (r *SubAccountRepository) ListByAgency(ctx context.Context, agencyID string) ([]subaccount.SubAccount, error) {
	query := `
		SELECT id, agency_id, name, company_email, sub_account_logo, created_at, updated_at
		FROM sub_accounts
		WHERE agency_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-accounts: %w", err)
	}
	defer rows.Close()

	accounts := []subaccount.SubAccount{}
	for rows.Next() {
		var s subaccount.SubAccount
		err := rows.Scan(
			&s.ID, &s.AgencyID, &s.Name, &s.CompanyEmail, &s.SubAccountLogo,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-account: %w", err)
		}
		accounts = append(accounts, s)
	}

	return accounts, nil
}

// CountByAgency counts the sub-accounts of an agency
func (r *SubAccountRepository) CountByAgency(ctx context.Context, agencyID string) (int64, error) {
	query := `SELECT COUNT(*) FROM sub_accounts WHERE agency_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, agencyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sub-accounts: %w", err)
	}

	return count, nil
}
