package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Context keys shared between middleware and handlers
	ContextUserID    = "userID"
	ContextRole      = "role"
	ContextRequestID = "requestID"

	RequestIDHeader = "X-Request-ID"

	RoleAdmin = "admin"
)

// RequestID tags every request with an id, honoring one supplied by the
// caller so ids correlate across the frontend and this service.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
