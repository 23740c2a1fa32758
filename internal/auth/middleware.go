package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireAccessToken verifies the bearer token and injects the session into
// request context. It does not perform admin checks; those belong to internal/rbac.
func RequireAccessToken(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := m.Verify(tok, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sess := Session{UserID: claims.UserID, ModelID: claims.ModelID, Admin: claims.Admin, TokenID: claims.ID}
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), sess))

		// Also store on gin context for handler convenience.
		c.Set("user_id", sess.UserID)
		c.Set("model_id", sess.ModelID)
		c.Set("admin", sess.Admin)

		c.Next()
	}
}
