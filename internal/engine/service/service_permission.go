package service

import (
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
)

// PermissionService holds the access policy. Every check is a pure predicate
// over already-loaded rows; callers run them before any store write.
type PermissionService struct {
	memberRepo repo.IMemberRepository
}

func NewPermissionService(memberRepo repo.IMemberRepository) *PermissionService {
	return &PermissionService{memberRepo: memberRepo}
}

// IsOwner denies everyone except the company owner.
func (s *PermissionService) IsOwner(company *model.Company, actor *model.User) error {
	if company.OwnerUserId != actor.UserId {
		return errs.Forbidden("only the company owner may perform this action")
	}
	return nil
}

// HasQuizAccess admits the owner and every member or admin of the company.
func (s *PermissionService) HasQuizAccess(company *model.Company, actor *model.User) error {
	if company.OwnerUserId == actor.UserId {
		return nil
	}
	member, err := s.memberRepo.GetMember(actor.UserId, company.CompanyId)
	if err != nil {
		return err
	}
	if member == nil {
		return errs.Forbidden("user is not a member of this company")
	}
	return nil
}

// IsOwnerOrAdmin guards the analytics surfaces.
func (s *PermissionService) IsOwnerOrAdmin(company *model.Company, actor *model.User) error {
	if company.OwnerUserId == actor.UserId {
		return nil
	}
	member, err := s.memberRepo.GetMember(actor.UserId, company.CompanyId)
	if err != nil {
		return err
	}
	if member == nil || member.Role != model.RoleAdmin {
		return errs.Forbidden("only the owner or an admin may perform this action")
	}
	return nil
}

// selfEditableFields are the user fields an actor may change on their own row.
var selfEditableFields = map[string]bool{
	"firstname": true,
	"lastname":  true,
	"password":  true,
}

// CanModifyUser allows a superuser to change anything; a user may change only
// firstname, lastname and password on their own row.
func (s *PermissionService) CanModifyUser(targetUserId string, actor *model.User, fields []string) error {
	if actor.IsSuperuser == 1 {
		return nil
	}
	if actor.UserId != targetUserId {
		return errs.Forbidden("cannot modify another user")
	}
	for _, f := range fields {
		if !selfEditableFields[f] {
			return errs.Forbidden("field " + f + " cannot be self-modified")
		}
	}
	return nil
}

// CanDeleteUser allows self-deletion and superusers.
func (s *PermissionService) CanDeleteUser(targetUserId string, actor *model.User) error {
	if actor.IsSuperuser == 1 || actor.UserId == targetUserId {
		return nil
	}
	return errs.Forbidden("cannot delete another user")
}
