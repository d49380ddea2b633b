package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/go-quizhub/quizhub/internal/engine/conf"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/internal/engine/router"
	"github.com/go-quizhub/quizhub/internal/engine/service"
	"github.com/go-quizhub/quizhub/pkg/cache"
	"github.com/go-quizhub/quizhub/pkg/cron"
	"github.com/go-quizhub/quizhub/pkg/database"
	"github.com/go-quizhub/quizhub/pkg/log"
)

const defaultAnswerTTL = 48 * time.Hour

type App struct {
	HttpApp  *fiber.App
	Services *service.Services
	Redis    *redis.Client
	AppConf  conf.AppConfig
}

// NewApp assembles the whole engine: config, logger, stores, repositories,
// services, router and the background scheduler.
func NewApp(confFile string) (*App, func(), error) {
	appConf := conf.NewConf(confFile)

	log.MustInit(&appConf.Log)

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("init database failed: %w", err)
	}

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis failed: %w", err)
	}

	repos := repo.NewRepositories(database.NewGormDB(db), redisClient)

	answerTTL := defaultAnswerTTL
	if appConf.Redis.ExpireSeconds > 0 {
		answerTTL = time.Duration(appConf.Redis.ExpireSeconds) * time.Second
	}
	services := service.NewServices(repos, appConf.Http.Auth, answerTTL)

	rt := router.NewRouter(&appConf.Http, services, repos.User, redisClient)
	httpApp := rt.Router()

	cron.Init()
	if appConf.Scheduler.Enabled {
		err := cron.AddFunc(appConf.Scheduler.DueScanSpec, "notification-due-scan", func() {
			if err := services.Notification.RunDueScan(time.Now()); err != nil {
				log.Errorw("due scan failed", "error", err)
			}
		})
		if err != nil {
			return nil, nil, fmt.Errorf("register due scan job failed: %w", err)
		}
	}

	app := &App{
		HttpApp:  httpApp,
		Services: services,
		Redis:    redisClient,
		AppConf:  appConf,
	}

	cleanup := func() {
		cron.Stop()
		if err := redisClient.Close(); err != nil {
			log.Errorf("close redis failed: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return app, cleanup, nil
}

// Run starts the scheduler and the HTTP listener, then blocks until an exit
// signal arrives and shuts down gracefully.
func Run(app *App, cleanup func()) {
	cron.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		addr := fmt.Sprintf("%s:%d", app.AppConf.Http.Host, app.AppConf.Http.Port)
		log.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	}()

	sig := <-quit
	log.Infof("received signal: %v, shutting down gracefully", sig)

	shutdownTimeout := time.Duration(app.AppConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	cleanup()
	log.Infof("server shutdown complete")
}
