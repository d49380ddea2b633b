package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
)

func newTestServices(repos *repo.Repositories) *Services {
	auth := httpx.Auth{
		SecretKey:      "test-secret",
		AccessExpire:   60,
		RefreshExpire:  120,
		RedisKeyPrefix: "quizhub:token:",
	}
	return NewServices(repos, auth, time.Hour)
}

func seedUser(repos *repo.Repositories, userId string) *model.User {
	user := &model.User{UserId: userId, Username: userId, IsEnabled: 1}
	_ = repos.User.AddUser(user)
	return user
}

func seedCompany(repos *repo.Repositories, companyId, ownerUserId string) *model.Company {
	company := &model.Company{CompanyId: companyId, Name: companyId, OwnerUserId: ownerUserId, IsVisible: 1}
	_ = repos.Company.AddCompany(company)
	return company
}

func TestInvitationAcceptCreatesSingleMembership(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	invitee := seedUser(repos, "invitee")
	seedCompany(repos, "acme", owner.UserId)

	err := services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: invitee.UserId, CompanyId: "acme", Action: model.ActionSendInvitation,
	}, owner)
	require.NoError(t, err)

	err = services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionAcceptInvitation,
	}, invitee)
	require.NoError(t, err)

	member, err := repos.Member.GetMember(invitee.UserId, "acme")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, model.RoleMember, member.Role)

	pending, err := repos.Invitation.GetPendingInvitation(invitee.UserId, "acme")
	require.NoError(t, err)
	assert.Nil(t, pending, "accepted invitation must no longer be pending")
}

func TestInvitationDenyLeavesNoMembership(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	invitee := seedUser(repos, "invitee")
	seedCompany(repos, "acme", owner.UserId)

	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: invitee.UserId, CompanyId: "acme", Action: model.ActionSendInvitation,
	}, owner))
	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionDenyInvitation,
	}, invitee))

	member, err := repos.Member.GetMember(invitee.UserId, "acme")
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestSecondPendingInvitationRejected(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	invitee := seedUser(repos, "invitee")
	seedCompany(repos, "acme", owner.UserId)

	req := &model.OwnerActionReq{UserId: invitee.UserId, CompanyId: "acme", Action: model.ActionSendInvitation}
	require.NoError(t, services.Action.HandleOwnerAction(req, owner))

	err := services.Action.HandleOwnerAction(req, owner)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestInvitationAfterDenyIsAllowed(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	invitee := seedUser(repos, "invitee")
	seedCompany(repos, "acme", owner.UserId)

	req := &model.OwnerActionReq{UserId: invitee.UserId, CompanyId: "acme", Action: model.ActionSendInvitation}
	require.NoError(t, services.Action.HandleOwnerAction(req, owner))
	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionDenyInvitation,
	}, invitee))

	// a resolved invitation no longer blocks a new one
	require.NoError(t, services.Action.HandleOwnerAction(req, owner))
}

func TestJoinRequestLifecycle(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	applicant := seedUser(repos, "applicant")
	seedCompany(repos, "acme", owner.UserId)

	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionSendRequest,
	}, applicant))

	// duplicate pending request rejected
	err := services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionSendRequest,
	}, applicant)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: applicant.UserId, CompanyId: "acme", Action: model.ActionAcceptRequest,
	}, owner))

	member, err := repos.Member.GetMember(applicant.UserId, "acme")
	require.NoError(t, err)
	require.NotNil(t, member)

	// a member cannot request again
	err = services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionSendRequest,
	}, applicant)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestOwnerActionsRequireOwnership(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	stranger := seedUser(repos, "stranger")
	target := seedUser(repos, "target")
	seedCompany(repos, "acme", owner.UserId)

	err := services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: target.UserId, CompanyId: "acme", Action: model.ActionSendInvitation,
	}, stranger)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestOwnerCannotActAsMemberOfOwnCompany(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)

	err := services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionSendRequest,
	}, owner)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestPromoteAndDemote(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	member := seedUser(repos, "member")
	seedCompany(repos, "acme", owner.UserId)
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: member.UserId, CompanyId: "acme", Role: model.RoleMember,
	}))

	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: member.UserId, CompanyId: "acme", Action: model.ActionAddAdmin,
	}, owner))
	m, _ := repos.Member.GetMember(member.UserId, "acme")
	assert.Equal(t, model.RoleAdmin, m.Role)

	// promoting again is a conflict
	err := services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: member.UserId, CompanyId: "acme", Action: model.ActionAddAdmin,
	}, owner)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: member.UserId, CompanyId: "acme", Action: model.ActionRemoveAdmin,
	}, owner))
	m, _ = repos.Member.GetMember(member.UserId, "acme")
	assert.Equal(t, model.RoleMember, m.Role)
}

func TestLeaveCompanyRemovesMembership(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	member := seedUser(repos, "member")
	seedCompany(repos, "acme", owner.UserId)
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: member.UserId, CompanyId: "acme", Role: model.RoleMember,
	}))

	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionLeaveCompany,
	}, member))

	m, err := repos.Member.GetMember(member.UserId, "acme")
	require.NoError(t, err)
	assert.Nil(t, m)

	// leaving twice reports not found
	err = services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionLeaveCompany,
	}, member)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestCancelInvitationAndRequest(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	other := seedUser(repos, "other")
	seedCompany(repos, "acme", owner.UserId)

	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: other.UserId, CompanyId: "acme", Action: model.ActionSendInvitation,
	}, owner))
	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: other.UserId, CompanyId: "acme", Action: model.ActionCancelInvitation,
	}, owner))
	pending, _ := repos.Invitation.GetPendingInvitation(other.UserId, "acme")
	assert.Nil(t, pending)

	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionSendRequest,
	}, other))
	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "acme", Action: model.ActionCancelRequest,
	}, other))
	pendingReq, _ := repos.JoinRequest.GetPendingJoinRequest(other.UserId, "acme")
	assert.Nil(t, pendingReq)
}

func TestUnknownActionRejected(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)

	err := services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: "whoever", CompanyId: "acme", Action: "Explode",
	}, owner)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}
