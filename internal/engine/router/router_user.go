package router

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/log"
)

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user")
	{
		// not auth
		userGroup.Post("/register", rt.register)
		userGroup.Post("/login", rt.login)

		// auth
		userGroup.Post("/logout", auth, rt.logout)
		userGroup.Get("/list", auth, rt.listUsers)
		userGroup.Get("/getUserInfo", auth, rt.getUserInfo)
		userGroup.Get("/:userId", auth, rt.getUser)
		userGroup.Put("/:userId", auth, rt.updateUser)
		userGroup.Delete("/:userId", auth, rt.deleteUser)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.Register
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("register failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Username == "" || req.Password == "" {
		return httpx.WithRepErrMsg(c, httpx.UsernameArePasswordIsRequired.Code, httpx.UsernameArePasswordIsRequired.Msg, c.Path())
	}

	info, err := rt.Services.User.Register(&req)
	if err != nil {
		log.Errorf("register failed: %v", err)
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.Login
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("login failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}

	resp, err := rt.Services.User.Login(&req)
	if err != nil {
		log.Errorf("login failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.UserIncorrectPassword.Code, httpx.UserIncorrectPassword.Msg, c.Path())
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	if err := rt.Services.User.Logout(actor.UserId); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) getUserInfo(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	info, err := rt.Services.User.GetUser(actor.UserId)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) getUser(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	info, err := rt.Services.User.GetUser(c.Params("userId"))
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) updateUser(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	var req model.UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update user failed: %v", err)
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.User.UpdateUser(c.Params("userId"), actor, &req); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteUser(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	if err := rt.Services.User.DeleteUser(c.Params("userId"), actor); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	users, count, err := rt.Services.User.ListUsers(pageNum, pageSize)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{
		"list":  users,
		"count": count,
	})
}
