// Internal logging interface
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger = *slog.Logger

// Retrieve logger from context
func FromContext(ctx context.Context) Logger {
	value := ctx.Value(loggerContextKey)
	logger, ok := value.(Logger)
	if !ok || value == nil {
		return slog.Default()
	}
	return logger
}

// Return a copy of the context with logger inserted
func Insert(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey struct{}

var loggerContextKey contextKey

// Configure default logger.
//
// Logs always go to stderr: stdout is reserved for generated data
func Setup(level, format string) error {
	logger, err := New(os.Stderr, level, format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// Create new logger writing to dest.
//
// Level is one of: debug, info, warn, error.
// Format is either text or json
func New(dest io.Writer, level, format string) (Logger, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	options := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(dest, options)
	case "json":
		handler = slog.NewJSONHandler(dest, options)
	default:
		return nil, fmt.Errorf("unsupported log format: %q", format)
	}
	return slog.New(handler), nil
}
