package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recover is the outermost stage: a panic anywhere further down the
// chain is caught here, logged at Error with the stack of the panic
// site, and handed to the central responder as an unclassified
// failure, so the client still receives the uniform 500 body instead
// of a dropped connection. http.ErrAbortHandler keeps its sentinel
// meaning and is re-raised for the server to swallow.
func Recover(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Error("panic recovered",
						"panic", fmt.Sprintf("%v", p),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
						"stack", string(debug.Stack()))
					err = fmt.Errorf("panic: %v", p)
				}
			}()
			return next(c)
		}
	}
}
