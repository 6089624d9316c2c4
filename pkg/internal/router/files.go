package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tidyvault/tidyvault/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件操作相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 上传文件（生成预签名 URL），支持批量上传
		filesRoutes.POST("", handle.UploadFileURL)
		// 直接上传单个小文件
		filesRoutes.POST("/upload", handle.UploadSingleFile)
		// 手动移动单个文件
		filesRoutes.POST("/move", handle.MoveFile)
	}
}
