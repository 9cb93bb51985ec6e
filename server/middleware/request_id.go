package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey ключ request ID в контексте gin
const requestIDKey = "request_id"

// RequestID добавляет уникальный request ID к каждому запросу.
// Существующий заголовок X-Request-ID уважается.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

// GetRequestID извлекает request ID из контекста gin
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if reqID, ok := c.Get(requestIDKey); ok {
		if s, ok := reqID.(string); ok {
			return s
		}
	}
	return ""
}
