// internal/logging/logger.go
package logging

import (
	"io"
	"log"
	"log/slog"
	"strings"
)

// New builds the process logger from the configured level and format.
// The stdlib log package is pointed at the same writer.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	log.SetOutput(w)
	return slog.New(h)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToUpper(strings.TrimSpace(level)) {
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
