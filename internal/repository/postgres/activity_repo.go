package postgres

import (
	"context"
	"fmt"
	"strings"

	"agencyhub-service/internal/domain/activity"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append writes a new activity entry. The table is append-only; nothing in
// this repository mutates or removes existing rows.
func (r *ActivityRepository) Append(ctx context.Context, e *activity.Entry) error {
	query := `
		INSERT INTO activity_logs (id, agency_id, sub_account_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		e.ID, e.AgencyID, e.SubAccountID, e.Description,
	).Scan(&e.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}

	return nil
}

// ListByAgency retrieves the activity log of an agency, newest first.
func (r *ActivityRepository) ListByAgency(ctx context.Context, agencyID string, filters *activity.ListFilters) ([]activity.Entry, int64, error) {
	conditions := []string{"agency_id = $1"}
	args := []interface{}{agencyID}
	argPos := 2

	if len(filters.SubAccountIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("sub_account_id = ANY($%d)", argPos))
		args = append(args, pq.Array(filters.SubAccountIDs))
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM activity_logs WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	// Pagination
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT id, agency_id, sub_account_id, description, created_at
		FROM activity_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer rows.Close()

	entries := []activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		err := rows.Scan(&e.ID, &e.AgencyID, &e.SubAccountID, &e.Description, &e.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}
