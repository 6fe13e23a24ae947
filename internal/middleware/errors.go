package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
)

// ErrorHandler renders the last error a handler recorded with c.Error.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := httperr.FromError(err)

		if appErr.Status >= 500 {
			log.Error().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("unhandled error")
		}

		httperr.Write(c, appErr)
	}
}

// Recovery turns a panic into the generic 500 body.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error().
			Str("panic", fmt.Sprint(rec)).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		httperr.Write(c, httperr.Internal(fmt.Errorf("panic: %v", rec)))
	})
}
