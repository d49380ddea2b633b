package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/errs"
)

func TestIsOwner(t *testing.T) {
	repos := newTestRepos()
	permission := NewPermissionService(repos.Member)
	company := &model.Company{CompanyId: "acme", OwnerUserId: "owner"}

	assert.NoError(t, permission.IsOwner(company, &model.User{UserId: "owner"}))

	err := permission.IsOwner(company, &model.User{UserId: "other"})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestHasQuizAccess(t *testing.T) {
	repos := newTestRepos()
	permission := NewPermissionService(repos.Member)
	company := &model.Company{CompanyId: "acme", OwnerUserId: "owner"}
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: "member", CompanyId: "acme", Role: model.RoleMember,
	}))

	assert.NoError(t, permission.HasQuizAccess(company, &model.User{UserId: "owner"}))
	assert.NoError(t, permission.HasQuizAccess(company, &model.User{UserId: "member"}))

	err := permission.HasQuizAccess(company, &model.User{UserId: "stranger"})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestIsOwnerOrAdmin(t *testing.T) {
	repos := newTestRepos()
	permission := NewPermissionService(repos.Member)
	company := &model.Company{CompanyId: "acme", OwnerUserId: "owner"}
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: "admin", CompanyId: "acme", Role: model.RoleAdmin,
	}))
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: "member", CompanyId: "acme", Role: model.RoleMember,
	}))

	assert.NoError(t, permission.IsOwnerOrAdmin(company, &model.User{UserId: "owner"}))
	assert.NoError(t, permission.IsOwnerOrAdmin(company, &model.User{UserId: "admin"}))

	err := permission.IsOwnerOrAdmin(company, &model.User{UserId: "member"})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestCanModifyUser(t *testing.T) {
	repos := newTestRepos()
	permission := NewPermissionService(repos.Member)
	self := &model.User{UserId: "u1"}
	superuser := &model.User{UserId: "root", IsSuperuser: 1}

	assert.NoError(t, permission.CanModifyUser("u1", self, []string{"firstname", "lastname", "password"}))
	assert.NoError(t, permission.CanModifyUser("u2", superuser, []string{"email", "phone", "city"}))

	err := permission.CanModifyUser("u1", self, []string{"email"})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err), "self-editing is limited to name and password")

	err = permission.CanModifyUser("u2", self, []string{"firstname"})
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

func TestCanDeleteUser(t *testing.T) {
	repos := newTestRepos()
	permission := NewPermissionService(repos.Member)
	self := &model.User{UserId: "u1"}
	superuser := &model.User{UserId: "root", IsSuperuser: 1}

	assert.NoError(t, permission.CanDeleteUser("u1", self))
	assert.NoError(t, permission.CanDeleteUser("u1", superuser))

	err := permission.CanDeleteUser("u2", self)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}
