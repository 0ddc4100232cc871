package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AttemptCounter counts hits on a key within a rolling window.
type AttemptCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// LoginLimiter caps login attempts per client IP. A counter failure lets the
// request through so an unreachable store cannot lock out every login.
func LoginLimiter(counter AttemptCounter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := counter.Hit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			logrus.WithError(err).Warn("login limiter unavailable")
			c.Next()
			return
		}
		if n > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "too many login attempts, try again later"})
			return
		}
		c.Next()
	}
}
