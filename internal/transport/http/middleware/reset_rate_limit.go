package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewResetRateLimit is the stricter, fixed-window limiter in front of the
// password-reset endpoints. The 4-digit code space is only 9000 values
// over a 15-minute window, so brute-force resistance lives here, at the
// HTTP boundary, not in the reset service. Counters are kept in redis so
// the window survives restarts and is shared across replicas.
func NewResetRateLimit(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}

		key := "reset_rl:" + host
		n, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Fail closed: a limiter that cannot count must not wave
			// reset attempts through.
			log.Error("reset rate limit unavailable", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "try again later"})
			return
		}
		if n == 1 {
			if err := rdb.Expire(c.Request.Context(), key, window).Err(); err != nil {
				log.Error("reset rate limit expire failed", zap.Error(err))
			}
		}

		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
