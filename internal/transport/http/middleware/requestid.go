package middleware

import (
	"github.com/ErlanBelekov/shop-api/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

// RequestID tags every request, including ones the access policy rejects, so
// normalized error responses can be matched to log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.FromHeader(c.GetHeader(requestid.Header))

		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Set(RequestIDKey, id)
		c.Header(requestid.Header, id)
		c.Next()
	}
}
