package apperr

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/logging"
)

// response is the uniform JSON error body. Every failure the client
// sees has exactly this shape.
type response struct {
	Detail    string `json:"detail"`
	Code      string `json:"code"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

// NewHTTPErrorHandler returns the central Echo error handler. It maps
// any error escaping a handler or middleware to a taxonomy Error,
// renders the uniform JSON body with the kind's status and headers, and
// logs the failure with full request context. Server errors log at
// Error with the internal error text and a stack; expected client
// mistakes log quieter. The internal error text itself never reaches
// the client.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		ae := From(err)

		attrs := logging.RequestAttrs(c, ae.Status)
		attrs = append(attrs, "code", ae.Code, "detail", ae.Detail)
		switch {
		case ae.Status >= 500:
			attrs = append(attrs, "error", err.Error(), "stack", string(debug.Stack()))
			log.Error("server error", attrs...)
		case ae.Status == http.StatusBadRequest:
			log.Error("bad request", attrs...)
		case ae.Status == http.StatusUnauthorized,
			ae.Status == http.StatusForbidden,
			ae.Status == http.StatusUnprocessableEntity,
			ae.Status == http.StatusTooManyRequests:
			log.Warn("client error", attrs...)
		default:
			log.Info("client error", attrs...)
		}

		if c.Response().Committed {
			return
		}
		for k, v := range ae.Headers {
			c.Response().Header().Set(k, v)
		}
		body := response{
			Detail:    ae.Detail,
			Code:      ae.Code,
			Path:      c.Request().URL.Path,
			Method:    c.Request().Method,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ae.Status)
			return
		}
		if jerr := c.JSON(ae.Status, body); jerr != nil {
			log.Error("error response write failed", "error", jerr.Error())
		}
	}
}

// From normalizes any error into a taxonomy Error. Echo's own
// HTTPErrors (route not found, method not allowed, bind failures) are
// mapped by status; everything unclassified becomes Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := ""
		if s, ok := he.Message.(string); ok {
			detail = s
		}
		switch he.Code {
		case http.StatusBadRequest:
			return BadRequest(detail)
		case http.StatusUnauthorized:
			return Unauthorized("", detail)
		case http.StatusForbidden:
			return Forbidden("", detail)
		case http.StatusNotFound:
			return NotFound("", detail)
		case http.StatusMethodNotAllowed:
			return &Error{Status: he.Code, Code: CodeMethodNotAllowed, Detail: "Method not allowed"}
		case http.StatusRequestEntityTooLarge:
			return BodyTooLarge(detail)
		case http.StatusUnprocessableEntity:
			return Validation(detail)
		case http.StatusTooManyRequests:
			return RateLimited("")
		}
	}
	return Internal()
}
