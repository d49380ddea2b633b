package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IMemberRepository interface {
	GetMember(userId, companyId string) (*model.Member, error)
	GetMemberForUpdate(userId, companyId string) (*model.Member, error)
	ListCompanyMembers(companyId string) ([]model.Member, error)
	ListUserMemberships(userId string) ([]model.Member, error)
	AddMember(member *model.Member) error
	UpdateMemberRole(userId, companyId, role string) error
	RemoveMember(userId, companyId string) error
}

type MemberRepo struct {
	database.IDatabase
}

func NewMemberRepo(db database.IDatabase) IMemberRepository {
	return &MemberRepo{IDatabase: db}
}

func (r *MemberRepo) GetMember(userId, companyId string) (*model.Member, error) {
	var member model.Member
	err := r.Database().Where("user_id = ? AND company_id = ?", userId, companyId).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMemberForUpdate locks the member row for the rest of the transaction.
func (r *MemberRepo) GetMemberForUpdate(userId, companyId string) (*model.Member, error) {
	var member model.Member
	err := r.Database().Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND company_id = ?", userId, companyId).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepo) ListCompanyMembers(companyId string) ([]model.Member, error) {
	var members []model.Member
	err := r.Database().Where("company_id = ?", companyId).Find(&members).Error
	return members, err
}

func (r *MemberRepo) ListUserMemberships(userId string) ([]model.Member, error) {
	var members []model.Member
	err := r.Database().Where("user_id = ?", userId).Find(&members).Error
	return members, err
}

func (r *MemberRepo) AddMember(member *model.Member) error {
	return r.Database().Create(member).Error
}

func (r *MemberRepo) UpdateMemberRole(userId, companyId, role string) error {
	return r.Database().Model(&model.Member{}).
		Where("user_id = ? AND company_id = ?", userId, companyId).
		Update("role", role).Error
}

func (r *MemberRepo) RemoveMember(userId, companyId string) error {
	return r.Database().Where("user_id = ? AND company_id = ?", userId, companyId).
		Delete(&model.Member{}).Error
}
