package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/auth"
	"github.com/iliyamo/items-api/internal/logging"
	"github.com/iliyamo/items-api/internal/model"
)

// RequireUser gates a route group behind the principal resolver. On
// success the principal is stored in the request context for handlers
// and for the request logger; on failure the resolver's taxonomy error
// propagates to the central responder untouched.
func RequireUser(r *auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := r.Resolve(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if err != nil {
				return err
			}
			c.Set(logging.ContextKeyUser, u)
			c.Set(logging.ContextKeyUserID, u.ID)
			return next(c)
		}
	}
}

// CurrentUser extracts the principal stored by RequireUser. The second
// return is false on routes that never went through the gate.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(logging.ContextKeyUser).(model.User)
	return u, ok
}
