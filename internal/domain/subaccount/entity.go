package subaccount

import (
	"database/sql"
	"time"
)

type SubAccount struct {
	ID             string         `json:"id" db:"id"`
	AgencyID       string         `json:"agency_id" db:"agency_id"`
	Name           string         `json:"name" db:"name"`
	CompanyEmail   sql.NullString `json:"company_email,omitempty" db:"company_email"`
	SubAccountLogo sql.NullString `json:"sub_account_logo,omitempty" db:"sub_account_logo"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// DTOs

type CreateRequest struct {
	Name           string `json:"name" binding:"required,min=2"`
	CompanyEmail   string `json:"company_email" binding:"omitempty,email"`
	SubAccountLogo string `json:"sub_account_logo"`
}
