package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID使用的HTTP头.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware 为每个请求分配唯一ID，客户端传入时沿用.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDHeader, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
