package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"callcenter-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func serveWithSession(t *testing.T, sess auth.Session, withSession bool) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if withSession {
			ctx := auth.WithSession(c.Request.Context(), sess)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}, RequireAdmin(), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	if code := serveWithSession(t, auth.Session{UserID: "u", Admin: true}, true); code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAdmin_DeniesNonAdmin(t *testing.T) {
	if code := serveWithSession(t, auth.Session{UserID: "u", ModelID: "m"}, true); code != 403 {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAdmin_RequiresSession(t *testing.T) {
	if code := serveWithSession(t, auth.Session{}, false); code != 401 {
		t.Fatalf("expected 401, got %d", code)
	}
}
