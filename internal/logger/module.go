package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/config"
)

// Module wires slog logger and rotating log files for dependency injection.
var Module = fx.Options(
	fx.Provide(newFiles, newLogger),
	fx.Invoke(registerLifecycle),
)

func newFiles(cfg *config.Config) *Files {
	return NewFiles(cfg.LogDir)
}

type loggerParams struct {
	fx.In

	Files *Files
}

func newLogger(p loggerParams) *slog.Logger {
	var out io.Writer = os.Stdout
	if p.Files != nil && p.Files.App != nil {
		out = io.MultiWriter(os.Stdout, p.Files.App)
	}
	return New(out)
}

func registerLifecycle(lc fx.Lifecycle, files *Files) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return files.Close()
		},
	})
}
