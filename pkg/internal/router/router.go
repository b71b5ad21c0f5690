// Package router 管理路由配置，用于设置HTTP服务的路由规则.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAll 将全部业务路由绑定到传入的 gin 路由组（通常为 /api/v1）.
func RegisterAll(g *gin.RouterGroup) {
	RegisterAuthRoutes(g)
	RegisterFilesRoutes(g)
	RegisterHistoryRoutes(g)
	RegisterHealthCheckRoute(g)
	RegisterSchedulerRoutes(g)
}
