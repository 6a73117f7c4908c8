package logger

import (
	"io"
	"log/slog"
)

// New creates a preconfigured slog.Logger writing JSON lines to out.
func New(out io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}
