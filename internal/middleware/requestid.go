package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/logging"
)

// HeaderRequestID is the correlation header accepted on input and
// always echoed on output.
const HeaderRequestID = "X-Request-ID"

// RequestID reads a client-supplied correlation id or generates a fresh
// one, stores it in the request context for the logger, and stamps it
// on the response header before the rest of the chain runs so the id
// survives the error-handling path as well.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(logging.ContextKeyRequestID, id)
			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}
