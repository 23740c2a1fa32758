package main

import (
	"callcenter-platform/internal/httpapi"
	"callcenter-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// AUTH: login is public; the throttle inside the handler protects it.
	api.POST("/auth/login", h.Login)

	// Google client config carries no secrets beyond public identifiers.
	api.GET("/google/config", h.GoogleConfig)

	// protected API group
	authed := api.Group("")
	authed.Use(authMW)
	{
		authed.GET("/auth/profile", h.Profile)

		// CALLS pipeline: listing, metrics, transcript sync. All scoped by the
		// session's model_id; an empty model_id is a displayable state.
		authed.GET("/calls", h.ListCalls)
		authed.GET("/calls/metrics", h.CallMetrics)
		authed.GET("/calls/:call_id/transcript", h.CallTranscript)

		// Session-scoped selected call (toggle semantics).
		authed.GET("/selection", h.GetSelection)
		authed.PUT("/selection", h.ToggleSelection)

		// CONVERSATIONS admin API
		admin := authed.Group("")
		admin.Use(rbac.RequireAdmin())
		{
			admin.GET("/conversations", h.ListConversations)
		}

		// GOOGLE CALENDAR integration
		authed.POST("/google/update", h.GoogleUpdate)
		authed.POST("/calendar/normalize", h.CalendarNormalize)
		authed.GET("/calendar/events", h.CalendarEvents)
	}
}
