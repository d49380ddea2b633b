package model

// Company is owned by exactly one user. Ownership is implicit: the owner never
// has a member row of their own.
type Company struct {
	BaseModel
	CompanyId   string `gorm:"column:company_id;uniqueIndex" json:"companyId"`
	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	OwnerUserId string `gorm:"column:owner_user_id;index" json:"ownerUserId"`
	IsVisible   int    `gorm:"column:is_visible;default:1" json:"isVisible"` // 0: hidden, 1: listed
}

func (Company) TableName() string {
	return "t_company"
}

type CreateCompanyReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsVisible   *int   `json:"isVisible"`
}

type UpdateCompanyReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsVisible   *int    `json:"isVisible"`
}
