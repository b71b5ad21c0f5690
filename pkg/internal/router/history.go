package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/handle"
)

// RegisterHistoryRoutes 注册浏览记录相关路由.
func RegisterHistoryRoutes(g *gin.RouterGroup) {
	historyRoutes := g.Group("/history")
	{
		historyRoutes.GET("", handle.History)
		historyRoutes.DELETE("", handle.ClearHistory)
	}
}
