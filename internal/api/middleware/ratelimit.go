package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/miniblog/pkg/logger"
	"github.com/d60-Lab/miniblog/pkg/ratelimit"
)

// RateLimit rejects clients over the per-IP budget. Limiter errors fail
// open: a broken redis must not take the site down.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.L().Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
