package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/http/jwt"
	"github.com/go-quizhub/quizhub/pkg/id"
	"github.com/go-quizhub/quizhub/pkg/log"
)

type UserService struct {
	userRepo   repo.IUserRepository
	permission *PermissionService
	auth       httpx.Auth
}

func NewUserService(userRepo repo.IUserRepository, permission *PermissionService, auth httpx.Auth) *UserService {
	return &UserService{
		userRepo:   userRepo,
		permission: permission,
		auth:       auth,
	}
}

// Register creates a user with a bcrypt password hash. Username and email must
// both be unused.
func (s *UserService) Register(req *model.Register) (*model.UserInfo, error) {
	existing, err := s.userRepo.GetUserByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, errs.Wrap(err, "check existing user failed")
	}
	if existing != nil {
		return nil, errs.Conflict("username or email already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(err, "hash password failed")
	}

	user := &model.User{
		UserId:    id.GetUUID(),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Email:     req.Email,
		IsEnabled: 1,
	}
	if err := s.userRepo.AddUser(user); err != nil {
		log.Errorw("create user failed", "username", req.Username, "error", err)
		return nil, errs.Wrap(err, "create user failed")
	}

	log.Infow("user registered", "userId", user.UserId, "username", user.Username)
	info := toUserInfo(user)
	return &info, nil
}

// Login checks the password, issues a token pair and caches it in Redis so the
// auth middleware can reject tokens revoked by logout.
func (s *UserService) Login(req *model.Login) (*model.LoginResp, error) {
	user, err := s.userRepo.GetUserByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return nil, errs.Wrap(err, "load user failed")
	}
	if user == nil || user.IsEnabled != 1 {
		return nil, errs.NotFound("user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errs.Forbidden("wrong password")
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, errs.Wrap(err, "generate token failed")
	}

	now := time.Now()
	expire := s.auth.AccessExpire * time.Minute
	tokenInfo := &model.TokenInfo{
		AccessToken:  aToken,
		RefreshToken: rToken,
		ExpireAt:     now.Add(expire).Unix(),
		CreateAt:     now.Unix(),
	}
	if err := s.userRepo.SetToken(user.UserId, tokenInfo, expire); err != nil {
		return nil, errs.Wrap(err, "cache token failed")
	}

	return &model.LoginResp{
		UserInfo: toUserInfo(user),
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
		ExpireAt: tokenInfo.ExpireAt,
		CreateAt: tokenInfo.CreateAt,
	}, nil
}

// Logout drops the cached token, invalidating every outstanding access token.
func (s *UserService) Logout(userId string) error {
	if err := s.userRepo.DelToken(userId); err != nil {
		log.Errorw("delete token failed", "userId", userId, "error", err)
		return errs.Wrap(err, "delete token failed")
	}
	return nil
}

func (s *UserService) GetUser(userId string) (*model.UserInfo, error) {
	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		return nil, errs.Wrap(err, "load user failed")
	}
	if user == nil {
		return nil, errs.NotFound("user not found")
	}
	info := toUserInfo(user)
	return &info, nil
}

// UpdateUser applies the present fields after the policy check. A new password
// is re-hashed before it reaches the store.
func (s *UserService) UpdateUser(targetUserId string, actor *model.User, req *model.UpdateUserReq) error {
	if err := s.permission.CanModifyUser(targetUserId, actor, req.Fields()); err != nil {
		return err
	}

	target, err := s.userRepo.GetUserById(targetUserId)
	if err != nil {
		return errs.Wrap(err, "load user failed")
	}
	if target == nil {
		return errs.NotFound("user not found")
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return errs.Wrap(err, "hash password failed")
		}
		fields["password"] = string(hash)
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if len(fields) == 0 {
		return nil
	}
	return s.userRepo.UpdateUser(targetUserId, fields)
}

func (s *UserService) DeleteUser(targetUserId string, actor *model.User) error {
	if err := s.permission.CanDeleteUser(targetUserId, actor); err != nil {
		return err
	}
	target, err := s.userRepo.GetUserById(targetUserId)
	if err != nil {
		return errs.Wrap(err, "load user failed")
	}
	if target == nil {
		return errs.NotFound("user not found")
	}
	if err := s.userRepo.DeleteUser(targetUserId); err != nil {
		return errs.Wrap(err, "delete user failed")
	}
	// Revoke any live session of the deleted user.
	_ = s.userRepo.DelToken(targetUserId)
	log.Infow("user deleted", "userId", targetUserId, "actor", actor.UserId)
	return nil
}

func (s *UserService) ListUsers(pageNum, pageSize int) ([]model.UserInfo, int64, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	users, count, err := s.userRepo.ListUsers((pageNum-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, errs.Wrap(err, "list users failed")
	}
	infos := make([]model.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, toUserInfo(&users[i]))
	}
	return infos, count, nil
}

func toUserInfo(u *model.User) model.UserInfo {
	return model.UserInfo{
		UserId:    u.UserId,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
	}
}
