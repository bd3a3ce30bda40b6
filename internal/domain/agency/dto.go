package agency

// DetailsInput is the agency-details form payload. It exists only for the
// duration of a submission; validation rules mirror the dashboard form.
type DetailsInput struct {
	Name         string `json:"name" validate:"required,min=2"`
	CompanyEmail string `json:"company_email" validate:"required,email"`
	CompanyPhone string `json:"company_phone" validate:"required,min=10"`
	WhiteLabel   bool   `json:"white_label"`
	Address      string `json:"address" validate:"required,min=5"`
	City         string `json:"city" validate:"required,min=2"`
	State        string `json:"state" validate:"required,min=2"`
	Zip          string `json:"zip" validate:"required,min=5"`
	Country      string `json:"country" validate:"required,min=2"`
	AgencyLogo   string `json:"agency_logo" validate:"required"`
}

type UpdateGoalRequest struct {
	Goal int `json:"goal" binding:"required,min=1"`
}

type ListFilters struct {
	Page     int `form:"page" binding:"min=0"`
	PageSize int `form:"page_size" binding:"min=0,max=100"`
}
