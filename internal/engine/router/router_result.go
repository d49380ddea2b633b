package router

import (
	"github.com/gofiber/fiber/v2"

	httpx "github.com/go-quizhub/quizhub/pkg/http"
)

func (rt *Router) resultRouter(r fiber.Router, auth fiber.Handler) {
	resultGroup := r.Group("/result", auth)
	{
		// my averages
		resultGroup.Get("/average/overall", rt.averageOverall)
		resultGroup.Get("/average/quizzes", rt.perQuizAverages)
		resultGroup.Get("/average/company/:companyId", rt.averageForCompany)

		// owner/admin analytics
		resultGroup.Get("/company/:companyId/members", rt.memberAverages)
		resultGroup.Get("/company/:companyId/member/:userId", rt.memberAveragesForUser)
		resultGroup.Get("/company/:companyId/passing-dates", rt.passingDates)

		// answer cache exports
		resultGroup.Get("/export/my", rt.exportMyAnswers)
		resultGroup.Get("/export/company/:companyId", rt.exportCompanyAnswers)
	}
}

func (rt *Router) averageOverall(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	average, err := rt.Services.Result.AverageOverall(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"average": average})
}

func (rt *Router) perQuizAverages(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	series, err := rt.Services.Result.PerQuizAverageSeries(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, series)
}

func (rt *Router) averageForCompany(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	average, err := rt.Services.Result.AverageForCompany(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"average": average})
}

func (rt *Router) memberAverages(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	series, err := rt.Services.Result.MemberAverageSeries(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, series)
}

func (rt *Router) memberAveragesForUser(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	series, err := rt.Services.Result.MemberAverages(companyId, c.Params("userId"), actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, series)
}

func (rt *Router) passingDates(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	dates, err := rt.Services.Result.PassingDatesForCompany(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, dates)
}

func (rt *Router) exportMyAnswers(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	answers, err := rt.Services.Result.CachedAnswersForUser(c.Context(), actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, answers)
}

func (rt *Router) exportCompanyAnswers(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	answers, err := rt.Services.Result.CachedAnswersForCompany(c.Context(), companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, answers)
}
