package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/config"
)

// CORS validates cross-origin requests against the configured origin
// allow-list and short-circuits preflight requests. An empty allow-list
// means cross-origin access is disabled: no Allow-Origin header is ever
// set, and browsers enforce the rest.
func CORS(cfg config.CORSConfig) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(cfg.Origins))
	for _, o := range cfg.Origins {
		allowed[strings.ToLower(strings.TrimSpace(o))] = true
	}
	methods := strings.Join(cfg.Methods, ", ")
	headers := strings.Join(cfg.Headers, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			h := c.Response().Header()
			h.Add("Vary", "Origin")

			if origin == "" || !allowed[strings.ToLower(origin)] {
				if c.Request().Method == http.MethodOptions &&
					c.Request().Header.Get("Access-Control-Request-Method") != "" {
					// Disallowed preflight: answer without CORS grants.
					return c.NoContent(http.StatusNoContent)
				}
				return next(c)
			}

			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Expose-Headers", HeaderRequestID)

			if c.Request().Method == http.MethodOptions &&
				c.Request().Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
