package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tbessonov/shopauth/internal/logger"
)

// requestIDKey is the fiber.Ctx locals key holding the request id.
const requestIDKey = "request_id"

// Logging logs every request with a generated request id, method, path,
// status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware instance.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle is the fiber middleware function.
func (m *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()
	requestID := uuid.NewString()
	c.Locals(requestIDKey, requestID)

	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	m.logger.Info("http request",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start).String())

	return err
}

// RequestIDFromCtx returns the request id stored by Handle.
func RequestIDFromCtx(c *fiber.Ctx) (string, bool) {
	requestID, ok := c.Locals(requestIDKey).(string)
	return requestID, ok
}
