package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type ICompanyRepository interface {
	AddCompany(company *model.Company) error
	GetCompanyById(companyId string) (*model.Company, error)
	UpdateCompany(companyId string, fields map[string]interface{}) error
	DeleteCompany(companyId string) error
	ListVisibleCompanies() ([]model.Company, error)
	ListCompaniesByOwner(ownerUserId string) ([]model.Company, error)
}

type CompanyRepo struct {
	database.IDatabase
}

func NewCompanyRepo(db database.IDatabase) ICompanyRepository {
	return &CompanyRepo{IDatabase: db}
}

func (r *CompanyRepo) AddCompany(company *model.Company) error {
	return r.Database().Create(company).Error
}

func (r *CompanyRepo) GetCompanyById(companyId string) (*model.Company, error) {
	var company model.Company
	err := r.Database().Where("company_id = ?", companyId).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepo) UpdateCompany(companyId string, fields map[string]interface{}) error {
	return r.Database().Model(&model.Company{}).
		Where("company_id = ?", companyId).
		Omit("company_id", "owner_user_id", "created_at").
		Updates(fields).Error
}

func (r *CompanyRepo) DeleteCompany(companyId string) error {
	return r.Database().Where("company_id = ?", companyId).Delete(&model.Company{}).Error
}

func (r *CompanyRepo) ListVisibleCompanies() ([]model.Company, error) {
	var companies []model.Company
	err := r.Database().Where("is_visible = ?", 1).Order("created_at DESC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepo) ListCompaniesByOwner(ownerUserId string) ([]model.Company, error) {
	var companies []model.Company
	err := r.Database().Where("owner_user_id = ?", ownerUserId).Find(&companies).Error
	return companies, err
}
