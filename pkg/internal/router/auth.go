package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/handle"
)

// RegisterAuthRoutes 注册认证相关路由.
func RegisterAuthRoutes(g *gin.RouterGroup) {
	authRoutes := g.Group("/auth")
	{
		authRoutes.POST("/signup", handle.Signup)
		authRoutes.POST("/login", handle.Login)
		authRoutes.POST("/logout", handle.Logout)
		authRoutes.GET("/session", handle.Session)
	}
}
