package service

import (
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	"github.com/go-quizhub/quizhub/pkg/id"
	"github.com/go-quizhub/quizhub/pkg/log"
)

type CompanyService struct {
	companyRepo repo.ICompanyRepository
	memberRepo  repo.IMemberRepository
	permission  *PermissionService
}

func NewCompanyService(companyRepo repo.ICompanyRepository, memberRepo repo.IMemberRepository, permission *PermissionService) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		memberRepo:  memberRepo,
		permission:  permission,
	}
}

// CreateCompany makes the actor the owner. Ownership stays implicit: the owner
// never gets a member row of their own.
func (s *CompanyService) CreateCompany(req *model.CreateCompanyReq, actor *model.User) (*model.Company, error) {
	if req.Name == "" {
		return nil, errs.Conflict("company name cannot be empty")
	}
	visible := 1
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	company := &model.Company{
		CompanyId:   id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		OwnerUserId: actor.UserId,
		IsVisible:   visible,
	}
	if err := s.companyRepo.AddCompany(company); err != nil {
		log.Errorw("create company failed", "name", req.Name, "error", err)
		return nil, errs.Wrap(err, "create company failed")
	}
	log.Infow("company created", "companyId", company.CompanyId, "owner", actor.UserId)
	return company, nil
}

func (s *CompanyService) GetCompany(companyId string) (*model.Company, error) {
	company, err := s.companyRepo.GetCompanyById(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	return company, nil
}

func (s *CompanyService) UpdateCompany(companyId string, actor *model.User, req *model.UpdateCompanyReq) error {
	company, err := s.GetCompany(companyId)
	if err != nil {
		return err
	}
	if err := s.permission.IsOwner(company, actor); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsVisible != nil {
		fields["is_visible"] = *req.IsVisible
	}
	if len(fields) == 0 {
		return nil
	}
	return s.companyRepo.UpdateCompany(companyId, fields)
}

func (s *CompanyService) DeleteCompany(companyId string, actor *model.User) error {
	company, err := s.GetCompany(companyId)
	if err != nil {
		return err
	}
	if err := s.permission.IsOwner(company, actor); err != nil {
		return err
	}
	if err := s.companyRepo.DeleteCompany(companyId); err != nil {
		return errs.Wrap(err, "delete company failed")
	}
	log.Infow("company deleted", "companyId", companyId, "actor", actor.UserId)
	return nil
}

func (s *CompanyService) ListVisibleCompanies() ([]model.Company, error) {
	return s.companyRepo.ListVisibleCompanies()
}

func (s *CompanyService) ListMyCompanies(actor *model.User) ([]model.Company, error) {
	return s.companyRepo.ListCompaniesByOwner(actor.UserId)
}

// ListCompanyMembers returns member rows for every quiz-access holder except
// the owner, who has no row.
func (s *CompanyService) ListCompanyMembers(companyId string, actor *model.User) ([]model.Member, error) {
	company, err := s.GetCompany(companyId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.HasQuizAccess(company, actor); err != nil {
		return nil, err
	}
	return s.memberRepo.ListCompanyMembers(companyId)
}
