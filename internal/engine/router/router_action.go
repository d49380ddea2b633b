package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/log"
)

func (rt *Router) actionRouter(r fiber.Router, auth fiber.Handler) {
	actionGroup := r.Group("/action", auth)
	{
		// workflow transitions
		actionGroup.Post("/owner", rt.ownerAction)
		actionGroup.Post("/user", rt.userAction)

		// pending listings
		actionGroup.Get("/invitations/my", rt.listMyInvitations)
		actionGroup.Get("/requests/my", rt.listMyRequests)
		actionGroup.Get("/invitations/company/:companyId", rt.listCompanyInvitations)
		actionGroup.Get("/requests/company/:companyId", rt.listCompanyRequests)
	}
}

func (rt *Router) ownerAction(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.OwnerActionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("owner action failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Action.HandleOwnerAction(&req, actor); err != nil {
		log.Errorf("owner action %s failed: %v", req.Action, err)
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) userAction(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.UserActionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("user action failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Action.HandleUserAction(&req, actor); err != nil {
		log.Errorf("user action %s failed: %v", req.Action, err)
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listMyInvitations(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	invitations, err := rt.Services.Action.ListMyInvitations(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, invitations)
}

func (rt *Router) listMyRequests(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	requests, err := rt.Services.Action.ListMyRequests(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, requests)
}

func (rt *Router) listCompanyInvitations(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	invitations, err := rt.Services.Action.ListCompanyInvitations(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, invitations)
}

func (rt *Router) listCompanyRequests(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	companyId := c.Params("companyId")
	if companyId == "" {
		return httpx.WithRepErrMsg(c, httpx.CompanyIdIsEmpty.Code, httpx.CompanyIdIsEmpty.Msg, c.Path())
	}
	requests, err := rt.Services.Action.ListCompanyRequests(companyId, actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, requests)
}
