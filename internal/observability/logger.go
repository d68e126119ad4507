// Package observability provides logging, metrics and the metrics endpoint.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/kpumuk/incidentscope/internal/config"
)

// NewLogger builds the application logger. The terminal belongs to the UI,
// so records go to cfg.LogFile and are discarded when it is unset. The
// returned cleanup closes the file.
func NewLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open log file: %w", err)
	}
	logger := newLogger(f, cfg.LogFormat, cfg.LogLevel)

	cleanup := func() {
		_ = f.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

func newLogger(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("session", uuid.NewString())
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
