package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"campaignhub/api/internal/httpapi"
)

// Recovery converts panics into enveloped 500s. The stack trace is attached
// only outside production.
func Recovery(log zerolog.Logger, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("error", r).
					Str("request_id", c.Writer.Header().Get(requestIDHeader)).
					Msg("panic recovered")

				message := ""
				if environment != "production" {
					message = fmt.Sprintf("%v\n%s", r, debug.Stack())
				}
				httpapi.AbortError(c, http.StatusInternalServerError, "Internal server error", message)
			}
		}()
		c.Next()
	}
}
