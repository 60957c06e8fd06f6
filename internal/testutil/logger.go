package testutil

import (
	"io"
	"log/slog"

	"github.com/tbessonov/shopauth/internal/logger"
)

// MakeNoopLogger returns a logger discarding all output, for use in tests.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}
