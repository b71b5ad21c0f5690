package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/context"
	"github.com/yeisme/ngdrive/pkg/internal/storage"
)

// StorageMiddleware 将存储管理器注入请求context，供 service 层取用.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
