package activity

import (
	"database/sql"
	"time"
)

// Entry is one line of the agency activity log. Entries are append-only and
// immutable once written.
type Entry struct {
	ID           string         `json:"id" db:"id"`
	AgencyID     string         `json:"agency_id" db:"agency_id"`
	SubAccountID sql.NullString `json:"sub_account_id,omitempty" db:"sub_account_id"`
	Description  string         `json:"description" db:"description"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// DTOs

type ListFilters struct {
	SubAccountIDs []string `form:"sub_account_ids"`
	Page          int      `form:"page" binding:"min=0"`
	PageSize      int      `form:"page_size" binding:"min=0,max=100"`
}

type ListResponse struct {
	Entries    []Entry `json:"entries"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}
