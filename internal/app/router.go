package app

import (
	"time"

	activityHandler "agencyhub-service/internal/handlers/activity"
	agencyHandler "agencyhub-service/internal/handlers/agency"
	wsHandler "agencyhub-service/internal/handlers/websocket"
	"agencyhub-service/internal/middleware"
	"agencyhub-service/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AgencyHandler   *agencyHandler.AgencyHandler
	ActivityHandler *activityHandler.ActivityHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Limiter         *ratelimit.Limiter
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Agencies ====================
	agencies := api.Group("/agencies")
	agencies.Use(h.AuthMiddleware.Auth())
	{
		// Reads
		agencies.GET("/:id", h.AgencyHandler.Get)
		agencies.GET("/:id/subaccounts", h.AgencyHandler.ListSubAccounts)
		agencies.GET("/:id/activity", h.ActivityHandler.List)

		// Writes are rate limited per identity
		writes := agencies.Group("")
		writes.Use(middleware.RateLimitMiddleware(h.Limiter, "agency-write", 30, time.Minute, logger))
		{
			writes.POST("", h.AgencyHandler.Onboard)
			writes.PUT("/:id", h.AgencyHandler.UpdateDetails)
			writes.PUT("/:id/goal", h.AgencyHandler.UpdateGoal)
			writes.DELETE("/:id", h.AgencyHandler.Delete)
			writes.POST("/:id/subaccounts", h.AgencyHandler.CreateSubAccount)
		}
	}
}
