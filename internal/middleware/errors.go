package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/propnest/propnest/internal/shared"
)

// StatusFor maps an error returned by a handler to its HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders handler errors as {"error": "..."} JSON bodies.
// Validation messages are passed to the client; unauthorized, store and
// unexpected failures get a fixed message and are logged instead.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := StatusFor(err)

		var (
			fe  *fiber.Error
			msg string
		)
		switch {
		case errors.As(err, &fe):
			msg = fe.Message
		case status == http.StatusUnauthorized:
			msg = "unauthorized"
		case status == http.StatusNotFound:
			msg = "resource not found"
		case status == http.StatusBadRequest:
			msg = strings.TrimPrefix(err.Error(), shared.ErrValidation.Error()+": ")
		case status == http.StatusServiceUnavailable:
			msg = "service temporarily unavailable"
		default:
			msg = "internal server error"
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Int("status", status),
				slog.Any("error", err),
			)
		}

		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}
