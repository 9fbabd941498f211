package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/items-api/internal/apperr"
)

func recoverServer(t *testing.T) (*echo.Echo, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	e := echo.New()
	e.HTTPErrorHandler = apperr.NewHTTPErrorHandler(log)
	e.Use(Recover(log), SecureHeaders(), RequestID())
	return e, &buf
}

func TestRecoverRendersUniformInternalError(t *testing.T) {
	e, buf := recoverServer(t)
	e.GET("/boom", func(c echo.Context) error {
		var m map[string]int
		m["x"] = 1 // nil-map write
		return nil
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeInternal, body["code"])
	assert.Equal(t, "An unexpected error occurred", body["detail"])
	assert.NotContains(t, rec.Body.String(), "nil map")

	// Earlier stages still stamped their headers.
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "nil map")
	assert.Contains(t, out, "stack")
}

func TestRecoverLeavesNormalFlowAlone(t *testing.T) {
	e, buf := recoverServer(t)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return apperr.NotFound("", "") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, buf.String(), "panic recovered")
}
