package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c)
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/12", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, raw := range []string{"x", "0", "-4"} {
		resp, body := doJSON(t, app, http.MethodGet, "/items/"+raw, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, raw)
		assert.JSONEq(t, `{"error":"Invalid ID","code":"VALIDATION_ERROR"}`, string(body), raw)
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        models.NewValidationError("Content is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Content is required","code":"VALIDATION_ERROR"}`,
		},
		{
			name:       "conflict",
			err:        models.NewConflictError("Post already liked", errors.New("23505")),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Post already liked","code":"CONFLICT"}`,
		},
		{
			name:       "not found",
			err:        models.NewNotFoundError("Post", 3),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Post with ID 3 not found","code":"NOT_FOUND"}`,
		},
		{
			name:       "internal",
			err:        models.NewInternalError(errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to like post","code":"INTERNAL_ERROR"}`,
		},
		{
			name:       "untyped",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to like post","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondServiceError(c, tt.err, "Failed to like post")
			})

			resp, body := doJSON(t, app, http.MethodGet, "/", nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrUnprocessableEntity })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("secret detail") })

	resp, body := doJSON(t, app, http.MethodGet, "/fiber", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "Unprocessable Entity")

	resp, body = doJSON(t, app, http.MethodGet, "/plain", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "secret")

	resp, _ = doJSON(t, app, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
