package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/yanqian/bitebrain/internal/infra/config"
)

// New constructs the process logger from the log section of the config.
func New(cfg *config.Config) *slog.Logger {
	return slog.New(newHandler(os.Stdout, cfg.Log)).With("service", "bitebrain")
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
