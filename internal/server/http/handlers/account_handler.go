package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
)

// AccountHandler serves balance management.
type AccountHandler struct {
	facade AccountFacade
	cookie CookieOptions
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade, cookie CookieOptions) *AccountHandler {
	return &AccountHandler{facade: facade, cookie: cookie}
}

// Manage handles GET /manage?action=&amount=.
func (h *AccountHandler) Manage(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Invalid session")
		return
	}

	receipt, err := h.facade.Manage(c.Request.Context(), c.ClientIP(), identity, c.Query("action"), c.Query("amount"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAction):
			c.String(http.StatusBadRequest, "Invalid action")
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.String(http.StatusBadRequest, "Invalid amount")
		case errors.Is(err, domainErrors.ErrInsufficientFunds):
			c.String(http.StatusBadRequest, "balance=insufficient funds")
		case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrUnauthorized):
			// account closed by a concurrent request
			c.String(http.StatusUnauthorized, "Invalid session")
		default:
			internalError(c, err)
		}
		return
	}

	if receipt.Action == model.ActionClose {
		middleware.ClearSessionCookie(c, h.cookie.Secure)
		c.String(http.StatusOK, "Account closed")
		return
	}
	c.String(http.StatusOK, "balance=%s", receipt.Balance.String())
}
