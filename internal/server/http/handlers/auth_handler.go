package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/server/http/dto"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
)

// AuthHandler processes registration, login and logout.
type AuthHandler struct {
	facade AuthFacade
	cookie CookieOptions
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{facade: facade, cookie: cookie}
}

// Register handles GET /register?user=&pass=.
func (h *AuthHandler) Register(c *gin.Context) {
	err := h.facade.Register(c.Request.Context(), c.ClientIP(), c.Query("user"), c.Query("pass"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingCredentials):
			c.String(http.StatusBadRequest, "Missing credentials")
		case errors.Is(err, domainErrors.ErrPasswordTooLong):
			c.String(http.StatusBadRequest, "Password too long")
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.String(http.StatusBadRequest, "User already exists")
		default:
			internalError(c, err)
		}
		return
	}

	c.String(http.StatusCreated, "User registered successfully")
}

// Login handles GET /login?user=&pass=.
func (h *AuthHandler) Login(c *gin.Context) {
	token, err := h.facade.Login(c.Request.Context(), c.ClientIP(), c.Query("user"), c.Query("pass"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrTooManyAttempts):
			c.String(http.StatusTooManyRequests, "Too many login attempts")
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.String(http.StatusUnauthorized, "Invalid login")
		default:
			internalError(c, err)
		}
		return
	}

	middleware.SetSessionCookie(c, token, h.facade.SessionTTL(), h.cookie.Secure)
	c.JSON(http.StatusOK, dto.LoginResponse{Message: "Login successful"})
}

// Logout handles GET /logout. It succeeds whether or not a session existed.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.facade.Logout(c.Request.Context(), token); err != nil {
			internalError(c, err)
			return
		}
	}

	middleware.ClearSessionCookie(c, h.cookie.Secure)
	c.String(http.StatusOK, "Logged out")
}
