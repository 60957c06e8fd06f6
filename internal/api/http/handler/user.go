package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tbessonov/shopauth/internal/api/http/middleware"
	"github.com/tbessonov/shopauth/internal/logger"
)

// User handles the protected /api/users endpoints.
type User struct {
	logger *logger.Logger
}

func NewUser(logger *logger.Logger) *User {
	return &User{logger: logger}
}

// Me returns the identity resolved by the authenticate middleware.
func (h *User) Me(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{
		"userId": identity.UserID,
		"role":   identity.Role,
	})
}
