package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the landing page and health probe.
type SystemHandler struct {
	facade HealthFacade
}

func NewSystemHandler(facade HealthFacade) *SystemHandler {
	return &SystemHandler{facade: facade}
}

// Index handles GET /.
func (h *SystemHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the bank!")
}

// Health handles GET /health.
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, "unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}
