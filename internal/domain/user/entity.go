package user

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleAgencyOwner    Role = "AGENCY_OWNER"
	RoleAgencyAdmin    Role = "AGENCY_ADMIN"
	RoleSubaccountUser Role = "SUBACCOUNT_USER"
)

type User struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Email     string         `json:"email" db:"email"`
	AvatarURL sql.NullString `json:"avatar_url,omitempty" db:"avatar_url"`
	Role      Role           `json:"role" db:"role"`
	AgencyID  sql.NullString `json:"agency_id,omitempty" db:"agency_id"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
