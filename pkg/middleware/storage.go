package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/context"
	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
	"github.com/tidyvault/tidyvault/pkg/internal/storage"
)

// StorageMiddleware 将存储 Manager 注入请求上下文，供 service 层取用.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ClassifierMiddleware 将分类器注入请求上下文.cls 为 nil 时直接透传（纯规则分类）.
func ClassifierMiddleware(cls classifier.Classifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cls != nil {
			ctx := context.WithClassifier(c.Request.Context(), cls)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
