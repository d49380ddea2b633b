package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IInvitationRepository interface {
	AddInvitation(invitation *model.Invitation) error
	GetPendingInvitation(userId, companyId string) (*model.Invitation, error)
	GetPendingInvitationForUpdate(userId, companyId string) (*model.Invitation, error)
	ResolveInvitation(id uint64, accepted bool) error
	DeleteInvitation(id uint64) error
	ListPendingByUser(userId string) ([]model.Invitation, error)
	ListPendingByCompany(companyId string) ([]model.Invitation, error)
}

type InvitationRepo struct {
	database.IDatabase
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{IDatabase: db}
}

func (r *InvitationRepo) AddInvitation(invitation *model.Invitation) error {
	return r.Database().Create(invitation).Error
}

func (r *InvitationRepo) GetPendingInvitation(userId, companyId string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.Database().Where("user_id = ? AND company_id = ? AND is_accepted IS NULL", userId, companyId).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetPendingInvitationForUpdate locks the pending row so a concurrent resolve
// of the same invitation waits behind this transaction.
func (r *InvitationRepo) GetPendingInvitationForUpdate(userId, companyId string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.Database().Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND company_id = ? AND is_accepted IS NULL", userId, companyId).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepo) ResolveInvitation(id uint64, accepted bool) error {
	return r.Database().Model(&model.Invitation{}).
		Where("id = ? AND is_accepted IS NULL", id).
		Update("is_accepted", accepted).Error
}

func (r *InvitationRepo) DeleteInvitation(id uint64) error {
	return r.Database().Where("id = ?", id).Delete(&model.Invitation{}).Error
}

func (r *InvitationRepo) ListPendingByUser(userId string) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.Database().Where("user_id = ? AND is_accepted IS NULL", userId).
		Order("created_at DESC").Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepo) ListPendingByCompany(companyId string) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.Database().Where("company_id = ? AND is_accepted IS NULL", companyId).
		Order("created_at DESC").Find(&invitations).Error
	return invitations, err
}
