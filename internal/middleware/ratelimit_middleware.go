package middleware

import (
	"net/http"
	"time"

	"agencyhub-service/internal/pkg/ratelimit"
	"agencyhub-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware caps mutating requests per identity. Unauthenticated
// requests fall back to the client IP as the counter key.
func RateLimitMiddleware(limiter *ratelimit.Limiter, scope string, max int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := GetIdentityID(c)
		if !ok {
			key = c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key, scope, max, window)
		if err != nil {
			// Redis being down should not take writes down with it.
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "too many requests", nil)
			return
		}

		c.Next()
	}
}
