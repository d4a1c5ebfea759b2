package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CorrelationIDHeader = "X-Correlation-ID"
const CorrelationIDKey = "correlation_id"

// CorrelationID is a Gin middleware that extracts or generates a correlation ID.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := Ensure(c.GetHeader(CorrelationIDHeader))

		c.Set(CorrelationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)

		c.Next()
	}
}

// GetCorrelationID retrieves the correlation ID from the Gin context.
func GetCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(CorrelationIDKey); exists {
		return id.(string)
	}
	return uuid.New().String()
}

// Ensure returns id unchanged when set, or a fresh UUID when empty.
// Broker consumers use it so messages republished downstream always
// carry a correlation ID even when the upstream producer omitted one.
func Ensure(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}
