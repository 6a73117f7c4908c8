package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
)

const (
	// IdentityContextKey is a gin context key for the authenticated model.Identity.
	IdentityContextKey = "identity"
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "session"
)

// SessionResolver maps a session token to its owner.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.Identity, error)
}

// Auditor receives security warnings.
type Auditor interface {
	Warn(ctx context.Context, ip, msg string)
}

// SessionRequired rejects requests without a live session cookie.
func SessionRequired(resolver SessionResolver, audit Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookieName)

		identity, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				audit.Warn(c.Request.Context(), c.ClientIP(), "Attempt to manage without valid session")
				c.Abort()
				c.String(http.StatusUnauthorized, "Invalid session")
				return
			}
			_ = c.Error(err)
			c.Abort()
			c.String(http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(IdentityContextKey, *identity)
		c.Next()
	}
}

// SetSessionCookie writes the session cookie. A zero ttl makes it a browser-session cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	maxAge := 0
	if ttl > 0 {
		maxAge = int(ttl / time.Second)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie instructs the client to drop the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
