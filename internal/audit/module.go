package audit

import (
	"io"
	"os"

	"go.uber.org/fx"

	"github.com/polkiloo/gobank/internal/logger"
	"github.com/polkiloo/gobank/internal/metrics"
)

// Module provides the security event logger.
var Module = fx.Provide(newLogger)

type loggerParams struct {
	fx.In

	Files   *logger.Files
	Metrics *metrics.Metrics
}

func newLogger(p loggerParams) *Logger {
	var out io.Writer = os.Stderr
	if p.Files != nil && p.Files.Security != nil {
		out = p.Files.Security
	}
	return New(out, func(level string) {
		p.Metrics.SecurityEvents.WithLabelValues(level).Inc()
	})
}
