package service

import (
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	"github.com/go-quizhub/quizhub/pkg/log"
)

// ActionService is the membership workflow engine. Every transition runs inside
// one transaction so its guard and its write cannot be split by a racing call.
type ActionService struct {
	repos      *repo.Repositories
	permission *PermissionService
}

func NewActionService(repos *repo.Repositories, permission *PermissionService) *ActionService {
	return &ActionService{repos: repos, permission: permission}
}

// HandleOwnerAction dispatches an owner-side transition.
func (s *ActionService) HandleOwnerAction(req *model.OwnerActionReq, actor *model.User) error {
	company, err := s.loadCompany(req.CompanyId)
	if err != nil {
		return err
	}
	if err := s.permission.IsOwner(company, actor); err != nil {
		return err
	}

	switch req.Action {
	case model.ActionSendInvitation:
		return s.sendInvitation(company, req.UserId, actor)
	case model.ActionCancelInvitation:
		return s.cancelInvitation(company, req.UserId)
	case model.ActionAcceptRequest:
		return s.acceptRequest(company, req.UserId)
	case model.ActionDenyRequest:
		return s.denyRequest(company, req.UserId)
	case model.ActionDeleteMember:
		return s.deleteMember(company, req.UserId)
	case model.ActionAddAdmin:
		return s.setMemberRole(company, req.UserId, model.RoleAdmin)
	case model.ActionRemoveAdmin:
		return s.setMemberRole(company, req.UserId, model.RoleMember)
	default:
		return errs.Conflictf("unknown owner action %q", req.Action)
	}
}

// HandleUserAction dispatches a member-side transition.
func (s *ActionService) HandleUserAction(req *model.UserActionReq, actor *model.User) error {
	company, err := s.loadCompany(req.CompanyId)
	if err != nil {
		return err
	}
	if company.OwnerUserId == actor.UserId {
		return errs.Forbidden("the owner cannot act as a member of their own company")
	}

	switch req.Action {
	case model.ActionSendRequest:
		return s.sendRequest(company, actor)
	case model.ActionCancelRequest:
		return s.cancelRequest(company, actor)
	case model.ActionAcceptInvitation:
		return s.acceptInvitation(company, actor)
	case model.ActionDenyInvitation:
		return s.denyInvitation(company, actor)
	case model.ActionLeaveCompany:
		return s.leaveCompany(company, actor)
	default:
		return errs.Conflictf("unknown user action %q", req.Action)
	}
}

func (s *ActionService) loadCompany(companyId string) (*model.Company, error) {
	if companyId == "" {
		return nil, errs.Conflict("company id cannot be empty")
	}
	company, err := s.repos.Company.GetCompanyById(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	return company, nil
}

func (s *ActionService) sendInvitation(company *model.Company, targetUserId string, actor *model.User) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		target, err := tx.User.GetUserById(targetUserId)
		if err != nil {
			return errs.Wrap(err, "load user failed")
		}
		if target == nil {
			return errs.NotFound("user not found")
		}
		if target.UserId == company.OwnerUserId {
			return errs.Conflict("cannot invite the company owner")
		}
		member, err := tx.Member.GetMember(targetUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if member != nil {
			return errs.Conflict("user is already a member")
		}
		pending, err := tx.Invitation.GetPendingInvitationForUpdate(targetUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending != nil {
			return errs.Conflict("an invitation for this user is already pending")
		}
		err = tx.Invitation.AddInvitation(&model.Invitation{
			SenderId:  actor.UserId,
			UserId:    targetUserId,
			CompanyId: company.CompanyId,
		})
		if err != nil {
			return errs.Wrap(err, "create invitation failed")
		}
		log.Infow("invitation sent", "companyId", company.CompanyId, "userId", targetUserId)
		return nil
	})
}

func (s *ActionService) cancelInvitation(company *model.Company, targetUserId string) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		pending, err := tx.Invitation.GetPendingInvitationForUpdate(targetUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending == nil {
			return errs.NotFound("no pending invitation for this user")
		}
		return tx.Invitation.DeleteInvitation(pending.ID)
	})
}

func (s *ActionService) acceptRequest(company *model.Company, senderUserId string) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		pending, err := tx.JoinRequest.GetPendingJoinRequestForUpdate(senderUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending == nil {
			return errs.NotFound("no pending join request from this user")
		}
		if err := tx.JoinRequest.ResolveJoinRequest(pending.ID, true); err != nil {
			return errs.Wrap(err, "resolve join request failed")
		}
		err = tx.Member.AddMember(&model.Member{
			UserId:    senderUserId,
			CompanyId: company.CompanyId,
			Role:      model.RoleMember,
		})
		if err != nil {
			return errs.Wrap(err, "create member failed")
		}
		log.Infow("join request accepted", "companyId", company.CompanyId, "userId", senderUserId)
		return nil
	})
}

func (s *ActionService) denyRequest(company *model.Company, senderUserId string) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		pending, err := tx.JoinRequest.GetPendingJoinRequestForUpdate(senderUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending == nil {
			return errs.NotFound("no pending join request from this user")
		}
		return tx.JoinRequest.ResolveJoinRequest(pending.ID, false)
	})
}

func (s *ActionService) deleteMember(company *model.Company, targetUserId string) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		member, err := tx.Member.GetMemberForUpdate(targetUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if member == nil {
			return errs.NotFound("user is not a member of this company")
		}
		if err := tx.Member.RemoveMember(targetUserId, company.CompanyId); err != nil {
			return errs.Wrap(err, "remove member failed")
		}
		log.Infow("member removed", "companyId", company.CompanyId, "userId", targetUserId)
		return nil
	})
}

// setMemberRole promotes or demotes through the member row alone; invitations
// and requests are never touched by role changes.
func (s *ActionService) setMemberRole(company *model.Company, targetUserId, role string) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		member, err := tx.Member.GetMemberForUpdate(targetUserId, company.CompanyId)
		if err != nil {
			return err
		}
		if member == nil {
			return errs.NotFound("user is not a member of this company")
		}
		if member.Role == role {
			return errs.Conflictf("user already has role %q", role)
		}
		return tx.Member.UpdateMemberRole(targetUserId, company.CompanyId, role)
	})
}

func (s *ActionService) sendRequest(company *model.Company, actor *model.User) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		member, err := tx.Member.GetMember(actor.UserId, company.CompanyId)
		if err != nil {
			return err
		}
		if member != nil {
			return errs.Conflict("already a member of this company")
		}
		pending, err := tx.JoinRequest.GetPendingJoinRequestForUpdate(actor.UserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending != nil {
			return errs.Conflict("a join request is already pending")
		}
		err = tx.JoinRequest.AddJoinRequest(&model.JoinRequest{
			SenderId:  actor.UserId,
			CompanyId: company.CompanyId,
		})
		if err != nil {
			return errs.Wrap(err, "create join request failed")
		}
		log.Infow("join request sent", "companyId", company.CompanyId, "userId", actor.UserId)
		return nil
	})
}

func (s *ActionService) cancelRequest(company *model.Company, actor *model.User) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		pending, err := tx.JoinRequest.GetPendingJoinRequestForUpdate(actor.UserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending == nil {
			return errs.NotFound("no pending join request")
		}
		return tx.JoinRequest.DeleteJoinRequest(pending.ID)
	})
}

func (s *ActionService) acceptInvitation(company *model.Company, actor *model.User) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		pending, err := tx.Invitation.GetPendingInvitationForUpdate(actor.UserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending == nil {
			return errs.NotFound("no pending invitation")
		}
		if err := tx.Invitation.ResolveInvitation(pending.ID, true); err != nil {
			return errs.Wrap(err, "resolve invitation failed")
		}
		err = tx.Member.AddMember(&model.Member{
			UserId:    actor.UserId,
			CompanyId: company.CompanyId,
			Role:      model.RoleMember,
		})
		if err != nil {
			return errs.Wrap(err, "create member failed")
		}
		log.Infow("invitation accepted", "companyId", company.CompanyId, "userId", actor.UserId)
		return nil
	})
}

func (s *ActionService) denyInvitation(company *model.Company, actor *model.User) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		pending, err := tx.Invitation.GetPendingInvitationForUpdate(actor.UserId, company.CompanyId)
		if err != nil {
			return err
		}
		if pending == nil {
			return errs.NotFound("no pending invitation")
		}
		return tx.Invitation.ResolveInvitation(pending.ID, false)
	})
}

func (s *ActionService) leaveCompany(company *model.Company, actor *model.User) error {
	return s.repos.Atomic(func(tx *repo.Repositories) error {
		member, err := tx.Member.GetMemberForUpdate(actor.UserId, company.CompanyId)
		if err != nil {
			return err
		}
		if member == nil {
			return errs.NotFound("not a member of this company")
		}
		if err := tx.Member.RemoveMember(actor.UserId, company.CompanyId); err != nil {
			return errs.Wrap(err, "remove member failed")
		}
		log.Infow("member left company", "companyId", company.CompanyId, "userId", actor.UserId)
		return nil
	})
}

// ListMyInvitations returns the actor's pending invitations.
func (s *ActionService) ListMyInvitations(actor *model.User) ([]model.Invitation, error) {
	return s.repos.Invitation.ListPendingByUser(actor.UserId)
}

// ListMyRequests returns the actor's pending join requests.
func (s *ActionService) ListMyRequests(actor *model.User) ([]model.JoinRequest, error) {
	return s.repos.JoinRequest.ListPendingBySender(actor.UserId)
}

// ListCompanyInvitations returns the company's pending invitations, owner only.
func (s *ActionService) ListCompanyInvitations(companyId string, actor *model.User) ([]model.Invitation, error) {
	company, err := s.loadCompany(companyId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.IsOwner(company, actor); err != nil {
		return nil, err
	}
	return s.repos.Invitation.ListPendingByCompany(companyId)
}

// ListCompanyRequests returns the company's pending join requests, owner only.
func (s *ActionService) ListCompanyRequests(companyId string, actor *model.User) ([]model.JoinRequest, error) {
	company, err := s.loadCompany(companyId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.IsOwner(company, actor); err != nil {
		return nil, err
	}
	return s.repos.JoinRequest.ListPendingByCompany(companyId)
}
