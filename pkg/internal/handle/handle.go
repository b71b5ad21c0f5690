// Package handle 提供HTTP请求处理器的实现.
package handle

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/rule"
)

// currentUser 提取当前用户：认证中间件写入的身份优先，
// 开发模式下允许 Header/query 注入便于本地调试.
func currentUser(c *gin.Context) (string, error) {
	user := c.GetString("user")

	if user == "" && configs.GetConfig().Auth.DevAllowQuery {
		user = c.GetHeader("X-User")
		if user == "" {
			user = c.Query("user")
		}
	}

	// 测试默认值，不为 Release 模式时
	if user == "" && gin.Mode() != gin.ReleaseMode {
		user = "test-user@example.com"
	}

	user = strings.TrimSpace(user)

	if err := rule.ValidateVar(user, "required,email"); err != nil {
		return "", err
	}

	return user, nil
}

// bearerToken 从 Authorization 头提取 Bearer 令牌，没有则返回空串.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
