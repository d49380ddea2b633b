package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/log"
)

func (rt *Router) companyRouter(r fiber.Router, auth fiber.Handler) {
	companyGroup := r.Group("/company", auth)
	{
		companyGroup.Post("/create", rt.createCompany)
		companyGroup.Get("/list", rt.listCompanies)
		companyGroup.Get("/my", rt.listMyCompanies)
		companyGroup.Get("/:companyId", rt.getCompany)
		companyGroup.Put("/:companyId", rt.updateCompany)
		companyGroup.Delete("/:companyId", rt.deleteCompany)
		companyGroup.Get("/:companyId/members", rt.listCompanyMembers)
	}
}

func (rt *Router) createCompany(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.CreateCompanyReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create company failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	company, err := rt.Services.Company.CreateCompany(&req, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, company)
}

func (rt *Router) listCompanies(c *fiber.Ctx) error {
	companies, err := rt.Services.Company.ListVisibleCompanies()
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, companies)
}

func (rt *Router) listMyCompanies(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companies, err := rt.Services.Company.ListMyCompanies(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, companies)
}

func (rt *Router) getCompany(c *fiber.Ctx) error {
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	company, err := rt.Services.Company.GetCompany(companyId)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, company)
}

func (rt *Router) updateCompany(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	var req model.UpdateCompanyReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update company failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Company.UpdateCompany(companyId, actor, &req); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteCompany(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	if err := rt.Services.Company.DeleteCompany(companyId, actor); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listCompanyMembers(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	members, err := rt.Services.Company.ListCompanyMembers(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, members)
}
