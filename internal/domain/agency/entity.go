package agency

import (
	"time"
)

// DefaultGoal is assigned to an agency on first creation.
const DefaultGoal = 5

type Agency struct {
	ID         string `json:"id" db:"id"`
	CustomerID string `json:"customer_id" db:"customer_id"`

	// Company details
	Name         string `json:"name" db:"name"`
	CompanyEmail string `json:"company_email" db:"company_email"`
	CompanyPhone string `json:"company_phone" db:"company_phone"`
	WhiteLabel   bool   `json:"white_label" db:"white_label"`

	// Address
	Address string `json:"address" db:"address"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zip_code" db:"zip_code"`
	Country string `json:"country" db:"country"`

	// Branding and billing
	AgencyLogo       string `json:"agency_logo" db:"agency_logo"`
	Goal             int    `json:"goal" db:"goal"`
	ConnectAccountID string `json:"connect_account_id" db:"connect_account_id"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Active reports whether the agency has a billing customer attached.
// An agency without one must never be treated as onboarded.
func (a *Agency) Active() bool {
	return a != nil && a.CustomerID != ""
}
