package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/shared/response"
)

// Recovery converts panics into the standard error envelope instead of a
// dropped connection. The panic value only goes to the log, never to the
// client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(ContextRequestID)).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError,
					response.CodeInternal, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
