package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gobank/internal/metrics"
	"github.com/polkiloo/gobank/internal/pkg/ratelimit"
)

// RateLimit rejects clients that exhausted a quota of limiter. scope labels the metric.
func RateLimit(limiter *ratelimit.Limiter, scope string, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		m.RateLimited.WithLabelValues(scope).Inc()
		c.Abort()
		c.String(http.StatusTooManyRequests, "Too many requests")
	}
}
