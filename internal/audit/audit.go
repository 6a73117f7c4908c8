package audit

import (
	"context"
	"io"
	"log/slog"
)

// LevelCritical marks events that indicate an ongoing attack, e.g. brute force.
const LevelCritical = slog.Level(12)

const (
	levelWarning  = "WARNING"
	levelCritical = "CRITICAL"
)

// Logger writes security events to a dedicated sink, separate from traffic logs.
type Logger struct {
	log     *slog.Logger
	observe func(level string)
}

// New creates an audit logger writing text lines to out. observe, when set, is called
// once per event with the level name.
func New(out io.Writer, observe func(level string)) *Logger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: slog.LevelWarn,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey {
				return a
			}
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(levelName(lvl))
			}
			return a
		},
	})
	if observe == nil {
		observe = func(string) {}
	}
	return &Logger{log: slog.New(handler), observe: observe}
}

// Warn records a suspicious but expected failure.
func (l *Logger) Warn(ctx context.Context, ip, msg string) {
	l.log.Log(ctx, slog.LevelWarn, msg, slog.String("ip", ip))
	l.observe(levelWarning)
}

// Critical records an event that needs operator attention.
func (l *Logger) Critical(ctx context.Context, ip, msg string) {
	l.log.Log(ctx, LevelCritical, msg, slog.String("ip", ip))
	l.observe(levelCritical)
}

func levelName(lvl slog.Level) string {
	switch {
	case lvl >= LevelCritical:
		return levelCritical
	case lvl >= slog.LevelWarn:
		return levelWarning
	default:
		return lvl.String()
	}
}
