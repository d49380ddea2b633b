package repo

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/internal/engine/consts"
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/cache"
	"github.com/go-quizhub/quizhub/pkg/database"
	"github.com/go-quizhub/quizhub/pkg/log"
)

type IUserRepository interface {
	AddUser(user *model.User) error
	GetUserById(userId string) (*model.User, error)
	GetUserByUsernameOrEmail(username, email string) (*model.User, error)
	UpdateUser(userId string, fields map[string]interface{}) error
	DeleteUser(userId string) error
	ListUsers(offset, pageSize int) ([]model.User, int64, error)
	SetToken(userId string, tokenInfo *model.TokenInfo, expire time.Duration) error
	DelToken(userId string) error
}

type UserRepo struct {
	db    database.IDatabase
	cache cache.ICache
}

func NewUserRepo(db database.IDatabase, c cache.ICache) IUserRepository {
	return &UserRepo{db: db, cache: c}
}

func (ur *UserRepo) AddUser(user *model.User) error {
	return ur.db.Database().Create(user).Error
}

func (ur *UserRepo) GetUserById(userId string) (*model.User, error) {
	var u model.User
	err := ur.db.Database().Where("user_id = ?", userId).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *UserRepo) GetUserByUsernameOrEmail(username, email string) (*model.User, error) {
	var u model.User
	err := ur.db.Database().Where("username = ? OR email = ?", username, email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser updates user fields (user_id, username, created_at cannot be updated)
func (ur *UserRepo) UpdateUser(userId string, fields map[string]interface{}) error {
	return ur.db.Database().Model(&model.User{}).
		Where("user_id = ?", userId).
		Omit("user_id", "username", "created_at").
		Updates(fields).Error
}

func (ur *UserRepo) DeleteUser(userId string) error {
	return ur.db.Database().Where("user_id = ?", userId).Delete(&model.User{}).Error
}

func (ur *UserRepo) ListUsers(offset, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var count int64

	err := ur.db.Database().Model(&model.User{}).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	err = ur.db.Database().Model(&model.User{}).Count(&count).Error
	return users, count, err
}

func (ur *UserRepo) SetToken(userId string, tokenInfo *model.TokenInfo, expire time.Duration) error {
	if ur.cache == nil {
		return nil
	}
	ctx := context.Background()

	tokenInfoJson, err := sonic.MarshalString(tokenInfo)
	if err != nil {
		return err
	}

	key := consts.UserTokenKey + userId
	if err := ur.cache.Set(ctx, key, tokenInfoJson, expire).Err(); err != nil {
		log.Errorw("failed to set token in Redis", "userId", userId, "error", err)
		return err
	}
	return nil
}

func (ur *UserRepo) DelToken(userId string) error {
	if ur.cache == nil {
		return nil
	}
	return ur.cache.Del(context.Background(), consts.UserTokenKey+userId).Err()
}
