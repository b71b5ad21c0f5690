package types

// SignupRequest 注册请求.
type SignupRequest struct {
	Email       string `binding:"required" json:"email"        rule:"required,email"`
	Password    string `binding:"required" json:"password"     rule:"required,min=6"`
	DisplayName string `json:"display_name,omitempty" rule:"max=128"`
}

// LoginRequest 登录请求.
type LoginRequest struct {
	Email    string `binding:"required" json:"email"    rule:"required,email"`
	Password string `binding:"required" json:"password" rule:"required"`
}

// AuthResponse 登录/注册成功响应.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // 令牌有效期（秒）
	User      string `json:"user"`       // 邮箱
}

// SessionState 会话状态.
type SessionState string

const (
	// SessionUnknown 初始态，尚未完成会话探测.
	SessionUnknown SessionState = "unknown"
	// SessionAuthenticated 持有有效会话.
	SessionAuthenticated SessionState = "authenticated"
	// SessionAnonymous 无会话或会话已失效.
	SessionAnonymous SessionState = "anonymous"
)

// SessionResponse 会话探测响应.
type SessionResponse struct {
	State SessionState `json:"state"`
	User  string       `json:"user,omitempty"`
}
