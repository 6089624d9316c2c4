package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/handle"
)

// RegisterOrganizeRoutes 注册整理引擎相关路由.
func RegisterOrganizeRoutes(g *gin.RouterGroup) {
	organizeRoutes := g.Group("/organize")
	{
		// 列举未整理文件
		organizeRoutes.GET("/files", handle.ListUnorganizedFiles)
		// 生成整理建议
		organizeRoutes.POST("/suggest", handle.SuggestOrganization)
		// 应用整理建议
		organizeRoutes.POST("/apply", handle.ApplyOrganization)
		// 回退最近一次整理批次
		organizeRoutes.POST("/revert", handle.RevertOrganization)
		// 查看整理历史
		organizeRoutes.GET("/history", handle.ListOrganizationHistory)
	}
}
