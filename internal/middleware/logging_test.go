package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(&ctxHandler{slog.NewJSONHandler(&buf, nil)})
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func TestCtxHandler_AddsContextValues(t *testing.T) {
	buf := captureLogger(t)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, TraceIDKey, "trace-1")
	Logger.With("component", "test").WithGroup("g").InfoContext(ctx, "hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"trace_id":"trace-1"`)
	assert.Contains(t, out, `"component":"test"`)
}

func TestContextMiddlewareAndStructuredLogger(t *testing.T) {
	buf := captureLogger(t)

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "fixed-id" }}))
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())
	app.Get("/ok", func(c *fiber.Ctx) error {
		rid, _ := c.UserContext().Value(RequestIDKey).(string)
		return c.SendString(rid)
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.ErrTeapot
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), `"msg":"request processed"`)
	assert.Contains(t, buf.String(), `"request_id":"fixed-id"`)
	assert.Contains(t, buf.String(), `"path":"/ok"`)

	buf.Reset()
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"request failed"`)
}

func TestInitMetrics_Once(t *testing.T) {
	assert.Same(t, InitMetrics("postboard-test"), InitMetrics("other"))
}
