package middleware

import (
	"strings"

	"backoffice/pkg/requestid"

	"github.com/gin-gonic/gin"
)

// RequestID keeps the caller's X-Request-ID, or issues one, and makes it
// available to everything downstream through the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestid.Header))
		if id == "" || len(id) > requestid.MaxLen {
			id = requestid.New()
		}
		c.Header(requestid.Header, id)
		c.Request = c.Request.WithContext(requestid.WithContext(c.Request.Context(), id))
		c.Next()
	}
}
