package logger

import (
	"log/slog"
	"os"
	"strings"
)

func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	h := handler(getSlogLevel(level))
	return slog.New(h)
}

// HandlerFor picks the handler constructor for a LOGFORMAT value:
// "text" for local development, anything else for Cloud Run JSON.
func HandlerFor(format string) func(level slog.Level) slog.Handler {
	if strings.EqualFold(format, "text") {
		return func(level slog.Level) slog.Handler {
			return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		}
	}
	return NewCloudRunHandler
}

func getSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
