package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件操作相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 列表（分类与关键字过滤）
		filesRoutes.GET("", handle.ListFiles)
		// 上传单个文件
		filesRoutes.POST("", handle.UploadFile)

		// 单个文件操作
		singleGroup := filesRoutes.Group("/:name")
		{
			// 预览（inline/viewer/download 三种模式）
			singleGroup.GET("/preview", handle.PreviewFile)
			// 下载直链
			singleGroup.GET("/download", handle.DownloadFile)
			// 删除文件（需要 confirm=true）
			singleGroup.DELETE("", handle.DeleteFile)
		}
	}
}
