package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
)

const msgInternalError = "Internal server error"

// CookieOptions controls attributes of the session cookie.
type CookieOptions struct {
	Secure bool
}

// CurrentIdentity extracts the authenticated user from context.
func CurrentIdentity(c *gin.Context) (model.Identity, bool) {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := val.(model.Identity)
	return identity, ok
}

// internalError attaches err for the request logger and answers with a generic 500.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, msgInternalError)
}
