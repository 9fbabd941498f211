// Package router wires the middleware chain and the HTTP routes. The
// middleware order is an explicit data structure here, not an accident
// of registration: admission control runs before anything touches the
// body, and every later stage stamps its headers before the handler so
// they survive the error path.
package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/items-api/internal/apperr"
	"github.com/iliyamo/items-api/internal/auth"
	"github.com/iliyamo/items-api/internal/config"
	"github.com/iliyamo/items-api/internal/handler"
	"github.com/iliyamo/items-api/internal/middleware"
)

// New builds the Echo instance: central error handler, the ordered
// pipeline, and all routes.
func New(cfg config.Config, log *slog.Logger, rdb *redis.Client,
	authH *handler.AuthHandler, itemH *handler.ItemHandler, resolver *auth.Resolver) *echo.Echo {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.NewHTTPErrorHandler(log)

	// Stage order is fixed: panic recovery -> body-size admission ->
	// security headers -> request logging -> request id -> rate
	// limiting -> CORS.
	e.Use(
		middleware.Recover(log),
		middleware.BodyLimit(cfg.MaxBodyBytes),
		middleware.SecureHeaders(),
		middleware.RequestLogger(log),
		middleware.RequestID(),
		middleware.RateLimit(cfg.RateLimit, rdb, log),
		middleware.CORS(cfg.CORS),
	)

	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1")

	ag := api.Group("/auth")
	ag.POST("/register", authH.Register)
	ag.POST("/token", authH.Login)

	// The auth gate hangs off prefixed groups only. A bare Group("")
	// would register a catch-all under /api/v1 and turn every unknown
	// path into a 401 instead of the uniform 404.
	users := api.Group("/users", middleware.RequireUser(resolver))
	users.GET("/me", authH.Me)

	items := api.Group("/items", middleware.RequireUser(resolver))
	items.POST("", itemH.Create)
	items.GET("", itemH.List)
	items.GET("/:id", itemH.Get)
	items.PUT("/:id", itemH.Update)
	items.DELETE("/:id", itemH.Delete)

	return e
}
