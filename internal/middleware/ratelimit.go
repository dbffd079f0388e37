package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"campaignhub/api/internal/config"
	"campaignhub/api/internal/httpapi"
)

// RateLimit applies a fixed-window per-IP request ceiling backed by redis.
// When redis is unreachable the request is let through rather than failing
// the whole API on a cache outage.
func RateLimit(cfg config.RateLimitConfig, redisClient *redis.Client, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		count, err := redisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limit counter unavailable")
			c.Next()
			return
		}

		if count == 1 {
			redisClient.Expire(c.Request.Context(), key, cfg.Window)
		}

		if count > int64(cfg.Max) {
			httpapi.AbortError(c, http.StatusTooManyRequests,
				"Too many requests from this IP, please try again later.", "")
			return
		}

		c.Next()
	}
}
