package router

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/internal/engine/service"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
	"github.com/go-quizhub/quizhub/pkg/http/jwt"
	"github.com/go-quizhub/quizhub/pkg/http/middleware"
)

type Router struct {
	Http     *httpx.Http
	Services *service.Services
	Users    repo.IUserRepository
	Redis    redis.UniversalClient
}

func NewRouter(httpConf *httpx.Http, services *service.Services, users repo.IUserRepository, redisClient redis.UniversalClient) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Users:    users,
		Redis:    redisClient,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "quizhub",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	if rt.Http.AccessLog {
		app.Use(logger.New())
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	engine := app.Group(rt.Http.ContextPath)
	rt.routerGroup(engine)

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.Redis)

	rt.userRouter(r, auth)
	rt.companyRouter(r, auth)
	rt.actionRouter(r, auth)
	rt.quizRouter(r, auth)
	rt.resultRouter(r, auth)
	rt.notificationRouter(r, auth)
}

// actor resolves the authenticated user behind the request. The middleware has
// already validated the token; a missing row means the account is gone.
func (rt *Router) actor(c *fiber.Ctx) (*model.User, error) {
	claims, ok := c.Locals(middleware.ClaimsKey).(*jwt.AuthClaims)
	if !ok || claims == nil {
		return nil, httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}
	user, err := rt.Users.GetUserById(claims.UserId)
	if err != nil {
		return nil, httpx.WithRepErrMsg(c, httpx.InternalError.Code, httpx.InternalError.Msg, c.Path())
	}
	if user == nil {
		return nil, httpx.WithRepErrMsg(c, httpx.UserNotExist.Code, httpx.UserNotExist.Msg, c.Path())
	}
	return user, nil
}
