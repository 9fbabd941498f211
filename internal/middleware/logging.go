package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/logging"
)

// captureWriter tees the response body into a bounded buffer while
// forwarding to the client, so the log can carry a best-effort copy of
// what was sent without altering a single byte of it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

const logBodyLimit = 64 * 1024

// RequestLogger emits one structured line per successful request after
// the handler has produced its response. Failures are logged by the
// central error handler instead, so each request logs exactly once.
// The captured response body is decoded as JSON when possible and put
// through redaction before logging; redaction is not optional and has
// no bypass.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          logBodyLimit,
			}
			c.Response().Writer = cw

			if err := next(c); err != nil {
				return err
			}

			status := c.Response().Status
			if status >= 400 {
				return nil
			}
			attrs := logging.RequestAttrs(c, status)
			if body := decodeBody(cw.buf.Bytes()); body != nil {
				attrs = append(attrs, "response_body", logging.Redact(body))
			}
			log.Info("request succeeded", attrs...)
			return nil
		}
	}
}

// decodeBody attempts a JSON decode of the captured bytes. Non-JSON or
// truncated bodies log without a body field rather than failing the
// request.
func decodeBody(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	return v
}
