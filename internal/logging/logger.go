package logging

import (
	"log/slog"
	"os"
)

// GetLogger returns the service-wide JSON logger
func GetLogger(service string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", service)
}
