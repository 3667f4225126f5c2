package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Service string
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{Service: service}
}

// Check GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"service":   h.Service,
	})
}
