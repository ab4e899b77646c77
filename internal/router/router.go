package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/config"
	"github.com/iliyamo/lecture-hall-booking/internal/handler"
	"github.com/iliyamo/lecture-hall-booking/internal/middleware"
	"github.com/iliyamo/lecture-hall-booking/internal/model"
)

// Deps carries everything the routes need.  Redis may be nil, in which
// case caching and rate limiting are disabled.
type Deps struct {
	JWTSecret string
	Events    *handler.EventHandler
	Halls     *handler.HallHandler
	Auth      *handler.AuthHandler
	Health    echo.HandlerFunc
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Logger    *zap.Logger
}

// RegisterRoutes mounts the public auth endpoints, the health check and the
// authenticated /api group.  Every authenticated route requires a valid
// JWT carrying one of the known roles and passes through the rate limiter.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", d.Health)

	api := e.Group("/api")
	api.POST("/auth/signup", d.Auth.Signup)
	api.POST("/auth/login", d.Auth.Login)

	g := api.Group("",
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole(model.Roles()...),
		middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger),
	)

	// ---- Events ----
	g.POST("/events", d.Events.Create)
	g.GET("/events", d.Events.All)
	g.GET("/events/user", d.Events.Mine)
	g.GET("/events/confirmed", d.Events.Confirmed)
	g.GET("/events/status/:status", d.Events.ByStatus)
	g.GET("/events/:id", d.Events.Get)
	g.PATCH("/events/:id/status", d.Events.SetStatus)

	// ---- Halls ----
	g.GET("/halls", d.Halls.List, middleware.NewRedisCache(d.Cache, d.Redis, d.Logger))
	g.GET("/halls/availability", d.Halls.Availability)
}
