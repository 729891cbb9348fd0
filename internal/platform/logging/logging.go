// Package logging builds the service's slog logger and carries it through
// contexts.
//
//	logger := logging.New("info", "json", os.Stderr, cfg.Session.CookieName)
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).ErrorContext(ctx, "adding task",
//	    slog.String("operation", "TodoView.AddTask"),
//	    slog.String("list_id", listID),
//	    slog.Any("error", err),
//	)
//
// Error logs name the operation and the entity ids involved and attach the
// full error chain. Request and correlation ids are added by the HTTP
// logging middleware.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New creates a logger writing to w. Unknown levels fall back to info, and
// any format other than "text" is JSON. Debug output includes source
// locations. Credentials are redacted, as are attributes named in redact.
func New(level, format string, w io.Writer, redact ...string) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(redact...),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// parseLevel accepts slog's names ("debug", "WARN", "info+2"). Anything
// else is info.
func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
