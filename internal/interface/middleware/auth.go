package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jioni/pkg/helpers"
	"github.com/oksasatya/jioni/pkg/response"
)

// CtxEmailKey is the Gin context key carrying the authenticated email.
const CtxEmailKey = "userEmail"

// RequireToken validates the Authorization bearer token and stores
// the holder's email in the Gin context. It is attached to verify,
// purchase, and pending routes only when AUTH_ENFORCED is set.
func RequireToken(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			response.Error(c, http.StatusUnauthorized, "Not authenticated", nil)
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, helpers.ErrTokenExpired) {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg, nil)
			return
		}
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}
