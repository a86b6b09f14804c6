package http_test

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

	httpadapter "github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/http"
)

func TestLoggingMiddleware_RecordsSession(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(httpadapter.HeaderClientSession, "tab-9")
	req.Header.Set("X-Request-Id", "req-9")
	e.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "tab-9", line["session"])
	assert.Equal(t, "req-9", line["request_id"])
	assert.Equal(t, "/ping", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
}
