package model

// Action is a membership workflow transition tag. Each transition is handled by
// its own service method; the tag only selects the dispatch target.
type Action string

// Owner-side actions
const (
	ActionSendInvitation   Action = "Send_invitation"
	ActionCancelInvitation Action = "Cancel_invitation"
	ActionAcceptRequest    Action = "Accept_request"
	ActionDenyRequest      Action = "Deny_request"
	ActionDeleteMember     Action = "Delete_member"
	ActionAddAdmin         Action = "Add_admin"
	ActionRemoveAdmin      Action = "Remove_admin"
)

// Member-side actions
const (
	ActionSendRequest      Action = "Send_request"
	ActionCancelRequest    Action = "Cancel_request"
	ActionAcceptInvitation Action = "Accept_invitation"
	ActionDenyInvitation   Action = "Deny_invitation"
	ActionLeaveCompany     Action = "Leave_company"
)

// OwnerActionReq is an owner-initiated workflow transition aimed at a user.
type OwnerActionReq struct {
	UserId    string `json:"userId"`
	CompanyId string `json:"companyId"`
	Action    Action `json:"action"`
}

// UserActionReq is a member-initiated workflow transition.
type UserActionReq struct {
	CompanyId string `json:"companyId"`
	Action    Action `json:"action"`
}
