package rbac

import (
	"net/http"

	"callcenter-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates endpoints that expose cross-account data (conversations
// admin API). The response is a plain "access denied", distinct from the
// "no model ID configured" state, which is not an authorization failure and
// is handled by the calls endpoints themselves.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := auth.SessionFrom(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			return
		}
		if !sess.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}
