// Package api 负责将内部路由挂载到对外的 HTTP API 版本前缀.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/router"
)

// RegisterGroup 将全部业务路由注册到 /api/v1 路由组.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterAll(e.Group("/api/v1"))

	return e
}
