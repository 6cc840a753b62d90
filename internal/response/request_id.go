package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key holding the request ID that
// buildMetadata stamps into every response envelope.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags each request with an ID for log correlation.
// A client-supplied X-Request-ID is honored so authoring clients can
// trace their own calls; otherwise one is generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
