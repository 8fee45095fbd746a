package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// FromContext returns the request-scoped logger stored in context, or a no-op logger.
func FromContext(ctx context.Context) zerolog.Logger {
	return FromContextOr(ctx, zerolog.Nop())
}

// FromContextOr returns the request-scoped logger stored in context, or fallback.
func FromContextOr(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return fallback
	}
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}
	return fallback
}

type loggerKey struct{}

// New builds a structured logger with sane defaults for JSON logs.
func New(appName, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, appName, env)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(out io.Writer, appName, env string) zerolog.Logger {
	var w io.Writer = out
	if env != "production" {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		}
	}
	return zerolog.New(w).With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// IntoContext injects a logger into context for downstream use.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}
