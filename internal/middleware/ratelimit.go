package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cafestamp/cafestamp-backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ScanRateLimitMiddleware bounds how many scans one actor may submit per
// minute, with a fixed-window counter in redis keyed by actor id. Redis
// being down never blocks scans; the limiter fails open because the
// transaction layer is the correctness boundary, the limiter only curbs
// abuse.
func ScanRateLimitMiddleware(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil || cfg.Scan.RatePerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		actorID, _ := c.Get("userID")
		key := fmt.Sprintf("scanlimit:%v:%s", actorID, time.Now().Format("200601021504"))

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[WARN] ScanRateLimitMiddleware: redis error: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}

		if count > int64(cfg.Scan.RatePerMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Scan rate limit exceeded"})
			return
		}
		c.Next()
	}
}
