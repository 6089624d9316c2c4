// Package api 定义 API 接口，负责将业务路由挂载到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/router"
)

// RegisterGroup 注册整理引擎相关的路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterRoutes(e.Group("/api/v1"))

	return e
}
