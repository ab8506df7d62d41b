package server

import (
	"errors"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the positive integer :id route parameter.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError renders a service error. Client errors keep their message;
// internal errors are logged and answered with failMsg so store details never leak.
func respondServiceError(c *fiber.Ctx, err error, failMsg string) error {
	var appErr *models.AppError
	if !models.IsInternal(err) && errors.As(err, &appErr) {
		return models.RespondWithError(c, appErr.Status(), appErr)
	}

	middleware.Logger.ErrorContext(c.UserContext(), failMsg,
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, &models.AppError{
		Code:    models.CodeInternal,
		Message: failMsg,
	})
}
