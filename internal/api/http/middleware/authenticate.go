package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tbessonov/shopauth/internal/logger"
	"github.com/tbessonov/shopauth/internal/model"
)

// identityKey is the fiber.Ctx locals key holding the authorized identity.
const identityKey = "identity"

// Authorizer resolves a bearer token to an identity.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (model.Identity, error)
}

// Authenticate gates protected routes: it strips the Bearer prefix, runs the
// token through the authorize gate and injects the identity into the request
// context. It never reveals why a token was rejected.
type Authenticate struct {
	authorizer Authorizer
	logger     *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authorizer Authorizer, logger *logger.Logger) *Authenticate {
	return &Authenticate{authorizer: authorizer, logger: logger}
}

// Handle is the fiber middleware function.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	identity, err := m.authorizer.Authorize(c.UserContext(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		m.logger.Debug("Authenticate middleware: rejected token", "path", c.Path())
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromCtx returns the identity stored by Handle.
func IdentityFromCtx(c *fiber.Ctx) (model.Identity, bool) {
	identity, ok := c.Locals(identityKey).(model.Identity)
	return identity, ok
}
