package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("/s3", handle.HealthS3)
	}
}
