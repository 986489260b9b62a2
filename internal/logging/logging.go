package logging

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger used by the service shell and the audit
// dispatcher.
func NewLogger(service string) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(h).With("service", service)
}
