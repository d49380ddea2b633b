package model

// Member records that a user belongs to a company with a role. Created only by
// an accepted invitation or join request, destroyed by leave/removal. Unique
// per (user_id, company_id).
type Member struct {
	BaseModel
	UserId    string `gorm:"column:user_id;index:idx_member_pair,unique" json:"userId"`
	CompanyId string `gorm:"column:company_id;index:idx_member_pair,unique" json:"companyId"`
	Role      string `gorm:"column:role" json:"role"`
}

func (Member) TableName() string {
	return "t_member"
}

// Member roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)
