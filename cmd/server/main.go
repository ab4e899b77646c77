package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/clock"
	"github.com/iliyamo/lecture-hall-booking/internal/config"
	"github.com/iliyamo/lecture-hall-booking/internal/database"
	"github.com/iliyamo/lecture-hall-booking/internal/handler"
	"github.com/iliyamo/lecture-hall-booking/internal/logging"
	"github.com/iliyamo/lecture-hall-booking/internal/middleware"
	"github.com/iliyamo/lecture-hall-booking/internal/queue"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
	"github.com/iliyamo/lecture-hall-booking/internal/router"
	"github.com/iliyamo/lecture-hall-booking/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel, "server")
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(context.Background(), db, logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	rdb := config.NewRedisClient(logger)
	if rdb != nil {
		defer rdb.Close()
	}

	qcfg := config.LoadQueueConfig()
	var notifier service.Notifier = queue.Discard{}
	if qcfg.Enabled {
		notifier = queue.NewPublisher(qcfg, logger)
	}

	events := repository.NewEventRepo(db)
	halls := repository.NewHallRepo(db)
	accounts := repository.NewAccountRepo(db)

	eventSvc := service.NewEventService(events, halls, notifier, clock.NewSystem(cfg.Location), logger)
	hallSvc := service.NewHallService(halls, events, logger)
	authSvc := service.NewAuthService(accounts, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	router.RegisterRoutes(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Events:    handler.NewEventHandler(eventSvc, logger),
		Halls:     handler.NewHallHandler(hallSvc, logger),
		Auth:      handler.NewAuthHandler(authSvc, logger),
		Health:    handler.Health(db),
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Logger:    logger,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.Stringer("tz", cfg.Location), zap.Bool("queue", qcfg.Enabled))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
