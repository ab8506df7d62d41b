package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postboard/internal/config"
	"postboard/internal/events"
	"postboard/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testOrigin = "http://localhost:3000"

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8888",
		Env:            "test",
		AllowedOrigins: testOrigin,
		EventsBackend:  config.EventsBackendNone,
	}
}

// newTestApp returns a fully wired app backed by a fresh in-memory database.
func newTestApp(t *testing.T, redisClient *redis.Client, publisher events.Publisher) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	srv, err := NewServerWithDeps(testConfig(), db, redisClient, publisher)
	require.NoError(t, err)
	return srv.App(), db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func httptestRequest(method, path, body, contentType string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}
