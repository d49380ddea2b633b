package model

// Invitation is the owner-initiated track towards membership. IsAccepted nil
// means pending; true/false are terminal.
type Invitation struct {
	BaseModel
	SenderId   string `gorm:"column:sender_id" json:"senderId"`
	UserId     string `gorm:"column:user_id;index" json:"userId"`
	CompanyId  string `gorm:"column:company_id;index" json:"companyId"`
	IsAccepted *bool  `gorm:"column:is_accepted" json:"isAccepted"`
}

func (Invitation) TableName() string {
	return "t_invitation"
}

// JoinRequest is the member-initiated track, symmetric to Invitation.
type JoinRequest struct {
	BaseModel
	SenderId   string `gorm:"column:sender_id;index" json:"senderId"`
	CompanyId  string `gorm:"column:company_id;index" json:"companyId"`
	IsAccepted *bool  `gorm:"column:is_accepted" json:"isAccepted"`
}

func (JoinRequest) TableName() string {
	return "t_join_request"
}
