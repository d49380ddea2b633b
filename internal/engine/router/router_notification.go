package router

import (
	"github.com/gofiber/fiber/v2"

	httpx "github.com/go-quizhub/quizhub/pkg/http"
)

func (rt *Router) notificationRouter(r fiber.Router, auth fiber.Handler) {
	notificationGroup := r.Group("/notification", auth)
	{
		notificationGroup.Get("/my", rt.listMyNotifications)
		notificationGroup.Get("/all", rt.listAllMyNotifications)
		notificationGroup.Post("/:notificationId/read", rt.readNotification)
	}
}

func (rt *Router) listMyNotifications(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	notifications, err := rt.Services.Notification.ListMyNotifications(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, notifications)
}

func (rt *Router) listAllMyNotifications(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	notifications, err := rt.Services.Notification.ListAllMyNotifications(actor)
	if err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepJSON(c, notifications)
}

func (rt *Router) readNotification(c *fiber.Ctx) error {
	actor, err := rt.actor(c)
	if actor == nil {
		return err
	}
	if err := rt.Services.Notification.ReadNotification(c.Params("notificationId"), actor); err != nil {
		return httpx.WithRepBizErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
