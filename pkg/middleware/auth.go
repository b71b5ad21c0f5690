package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/configs"
	ctxPkg "github.com/yeisme/ngdrive/pkg/context"
	"github.com/yeisme/ngdrive/pkg/internal/service"
)

// AuthMiddleware 基于 Bearer 令牌做统一身份认证校验。
//   - Authorization: Bearer <token> 通过校验后注入用户身份
//   - 支持通过配置跳过某些路径（如 /metrics, /api/v1/health, /api/v1/auth）
//   - 开发模式可允许 query user 兜底（由 configs.auth.dev_allow_query 控制）.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		if token := extractBearer(c); token != "" {
			p := service.AuthProvider(c.Request.Context())

			claims, err := p.Tokens().Validate(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is invalid or revoked"})
				return
			}

			c.Set("user", claims.Email)
			c.Request = c.Request.WithContext(ctxPkg.WithCurrentUser(c.Request.Context(), claims.Email))
			c.Next()

			return
		}

		if conf.DevAllowQuery && c.Query("user") != "" {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func extractBearer(c *gin.Context) string {
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

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
