package response

import (
	"github.com/gin-gonic/gin"
)

// Error writes the flat {"error": ...} envelope used across the API
// and aborts the handler chain. details carries field-level messages
// when binding fails, and is omitted otherwise.
func Error(c *gin.Context, status int, msg string, details any) {
	body := gin.H{"error": msg}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
