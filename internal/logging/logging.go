// Package logging wires the ambient charmbracelet/log logger through context,
// the same way internal/config carries *Config.
package logging

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// Default is the process-wide logger used when no logger has been attached
// to a context (e.g. in package-level helpers that don't take a context).
var Default = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "timevault",
})

// WithContext returns a new context carrying the given logger.
func WithContext(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger from the context, or Default if none was set.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default
}
