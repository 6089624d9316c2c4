// Package router 管理路由配置，用于设置 HTTP 服务的路由规则.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 在传入的路由组（假定为 /api/v1）下注册全部业务路由.
func RegisterRoutes(g *gin.RouterGroup) {
	RegisterOrganizeRoutes(g)
	RegisterFilesRoutes(g)
	RegisterHealthCheckRoute(g)
}
