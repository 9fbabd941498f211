package middleware // middleware provides the ordered request-processing chain

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/apperr"
)

// BodyLimit is the admission-control stage and must be the outermost
// middleware: nothing else may touch the body before it runs. It
// applies only to state-changing methods. A declared Content-Length
// over the ceiling is rejected before any read; bodies without a
// declared length are accumulated incrementally and aborted the moment
// the ceiling is crossed, never buffered unboundedly. Accepted bodies
// are replayed unchanged to downstream stages and the handler.
func BodyLimit(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				return next(c)
			}

			req := c.Request()
			if req.ContentLength > maxBytes {
				return tooLarge(maxBytes)
			}
			if req.Body == nil {
				return next(c)
			}

			// Chunked or unknown length: read at most maxBytes+1 so
			// crossing the ceiling is detected without draining the
			// rest of the stream.
			var buf bytes.Buffer
			n, err := io.Copy(&buf, io.LimitReader(req.Body, maxBytes+1))
			_ = req.Body.Close()
			if err != nil {
				return apperr.BadRequest("Malformed request body")
			}
			if n > maxBytes {
				return tooLarge(maxBytes)
			}
			req.Body = io.NopCloser(&buf)
			req.ContentLength = n
			return next(c)
		}
	}
}

func tooLarge(maxBytes int64) *apperr.Error {
	return apperr.BodyTooLarge(fmt.Sprintf("Request body too large. Max size: %d bytes.", maxBytes))
}
