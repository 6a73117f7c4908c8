package middleware

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	maxLoggedBody = 1024
	redacted      = "[REDACTED]"
)

var sensitiveParams = map[string]struct{}{
	"pass":     {},
	"password": {},
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(p []byte) (int, error) {
	if room := maxLoggedBody - w.body.Len(); room > 0 {
		if len(p) > room {
			w.body.Write(p[:room])
		} else {
			w.body.Write(p)
		}
	}
	return w.ResponseWriter.Write(p)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// RequestLogger logs every request and its response using slog. Password
// query values never reach the log.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ip := c.ClientIP()

		logger.Info("http request",
			slog.String("endpoint", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
			slog.Any("args", queryArgs(c)),
			slog.String("ip", ip),
		)

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error("request failed",
				slog.String("endpoint", c.Request.URL.Path),
				slog.String("error", c.Errors.String()),
				slog.String("ip", ip),
			)
		}
		logger.Info("http response",
			slog.Int("status", c.Writer.Status()),
			slog.String("data", recorder.body.String()),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", ip),
		)
	}
}

func queryArgs(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	args := make(map[string]string, len(query))
	for key, values := range query {
		if _, ok := sensitiveParams[key]; ok {
			args[key] = redacted
			continue
		}
		if len(values) > 0 {
			args[key] = values[0]
		}
	}
	return args
}
