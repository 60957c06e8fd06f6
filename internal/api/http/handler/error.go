package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tbessonov/shopauth/internal/model"
)

// handleError maps core errors to HTTP status codes. Token-level detail
// stays coarse: every authentication failure is a plain 401, while session
// failures keep their distinct messages for the session endpoints.
func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrInvalidSignature):
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, model.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusUnauthorized, "session not found")
	case errors.Is(err, model.ErrRefreshTokenMismatch):
		return fiber.NewError(fiber.StatusUnauthorized, "refresh token mismatch")
	case errors.Is(err, model.ErrMalformedToken),
		errors.Is(err, model.ErrInvalidRefreshToken):
		return fiber.NewError(fiber.StatusBadRequest, "invalid token")
	case errors.Is(err, model.ErrDuplicateLoginID):
		return fiber.NewError(fiber.StatusConflict, "login id already in use")
	case errors.Is(err, model.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, "email already in use")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}
