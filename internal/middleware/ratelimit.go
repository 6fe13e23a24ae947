package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/ratelimit"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

// RateLimit allows limit requests per client IP in each window.
// Store failures let the request through.
func RateLimit(store ratelimit.Store, limit int, window time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, resetIn, err := store.Hit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			log.Warn().Err(err).Msg("rate limit store unavailable")
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		reset := strconv.Itoa(int(resetIn.Round(time.Second).Seconds()))

		h := c.Writer.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(limit))
		h.Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		h.Set("RateLimit-Reset", reset)

		if count > int64(limit) {
			h.Set("Retry-After", reset)
			httperr.Write(c, httperr.TooManyRequests(rateLimitMessage))
			return
		}

		c.Next()
	}
}
