package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IJoinRequestRepository interface {
	AddJoinRequest(request *model.JoinRequest) error
	GetPendingJoinRequest(senderId, companyId string) (*model.JoinRequest, error)
	GetPendingJoinRequestForUpdate(senderId, companyId string) (*model.JoinRequest, error)
	ResolveJoinRequest(id uint64, accepted bool) error
	DeleteJoinRequest(id uint64) error
	ListPendingBySender(senderId string) ([]model.JoinRequest, error)
	ListPendingByCompany(companyId string) ([]model.JoinRequest, error)
}

type JoinRequestRepo struct {
	database.IDatabase
}

func NewJoinRequestRepo(db database.IDatabase) IJoinRequestRepository {
	return &JoinRequestRepo{IDatabase: db}
}

func (r *JoinRequestRepo) AddJoinRequest(request *model.JoinRequest) error {
	return r.Database().Create(request).Error
}

func (r *JoinRequestRepo) GetPendingJoinRequest(senderId, companyId string) (*model.JoinRequest, error) {
	var request model.JoinRequest
	err := r.Database().Where("sender_id = ? AND company_id = ? AND is_accepted IS NULL", senderId, companyId).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *JoinRequestRepo) GetPendingJoinRequestForUpdate(senderId, companyId string) (*model.JoinRequest, error) {
	var request model.JoinRequest
	err := r.Database().Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sender_id = ? AND company_id = ? AND is_accepted IS NULL", senderId, companyId).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *JoinRequestRepo) ResolveJoinRequest(id uint64, accepted bool) error {
	return r.Database().Model(&model.JoinRequest{}).
		Where("id = ? AND is_accepted IS NULL", id).
		Update("is_accepted", accepted).Error
}

func (r *JoinRequestRepo) DeleteJoinRequest(id uint64) error {
	return r.Database().Where("id = ?", id).Delete(&model.JoinRequest{}).Error
}

func (r *JoinRequestRepo) ListPendingBySender(senderId string) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	err := r.Database().Where("sender_id = ? AND is_accepted IS NULL", senderId).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *JoinRequestRepo) ListPendingByCompany(companyId string) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	err := r.Database().Where("company_id = ? AND is_accepted IS NULL", companyId).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}
