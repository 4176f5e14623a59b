package testutil

import (
	"io"

	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

// NewLogger returns a logger that discards its output.
func NewLogger() logger.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       "error",
		Format:      "json",
		ServiceName: "fleettrack-test",
		Output:      io.Discard,
	})
}
