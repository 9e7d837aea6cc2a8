package observability

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"fecreport/internal/config"
)

func NewLogger(cfg config.LoggerConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)

	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type contextKey string

const SectionIDKey contextKey = "section_id"

func WithSectionID(ctx context.Context, sectionID string) context.Context {
	return context.WithValue(ctx, SectionIDKey, sectionID)
}

func GetSectionID(ctx context.Context) string {
	if sectionID, ok := ctx.Value(SectionIDKey).(string); ok {
		return sectionID
	}
	return ""
}
