package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultAuthEnabled 是否开启认证.
	DefaultAuthEnabled = true
	// DefaultJWTSecret 默认签名密钥（仅限开发环境）.
	DefaultJWTSecret = "ngdrive-dev-secret"
	// DefaultTokenTTLHours 令牌有效期（小时）.
	DefaultTokenTTLHours = 24
	// DefaultBcryptCost bcrypt 哈希成本.
	DefaultBcryptCost = 10
	// DefaultSessionCookieName 会话 Cookie 名称.
	DefaultSessionCookieName = "ngdrive_session"
)

// AuthConfig 认证相关配置，基于 JWT 令牌与密码哈希.
type AuthConfig struct {
	Enabled           bool     `mapstructure:"enabled"`             // 开启认证校验
	JWTSecret         string   `mapstructure:"jwt_secret"`          // HS256 签名密钥
	TokenTTLHours     int      `mapstructure:"token_ttl_hours"     rule:"min=1,max=720"`
	BcryptCost        int      `mapstructure:"bcrypt_cost"         rule:"min=4,max=31"`
	SessionCookieName string   `mapstructure:"session_cookie_name"`
	SkipPaths         []string `mapstructure:"skip_paths"`      // 跳过认证的路径前缀（如 /metrics、/api/v1/health）
	DevAllowQuery     bool     `mapstructure:"dev_allow_query"` // 开发模式允许用 ?user= 便于本地调试
}

// GetTokenTTL 返回令牌有效期作为time.Duration.
func (c *AuthConfig) GetTokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl_hours", DefaultTokenTTLHours)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth.session_cookie_name", DefaultSessionCookieName)
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
		"/api/v1/auth",
	})
}
