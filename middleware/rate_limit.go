package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/limat-tech/voicebot/config"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 20 // per client per minute
)

// RateLimiter applies a fixed-window per-IP limit backed by Redis. The voice
// pipeline fans out to ASR, NLU and TTS backends, so it gets this guard.
// Without Redis the limiter is a no-op.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		key := "rate_limit:" + c.ClientIP()
		count, err := config.RedisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis trouble should not take the API down with it.
			c.Next()
			return
		}
		if count == 1 {
			config.RedisClient.Expire(c.Request.Context(), key, rateLimitPeriod)
		}
		if count > rateLimitCount {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
