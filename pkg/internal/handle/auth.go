package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/auth"
	"github.com/yeisme/ngdrive/pkg/internal/service"
	"github.com/yeisme/ngdrive/pkg/internal/types"
	"github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/rule"
)

// Signup 注册新用户并返回访问令牌.
//
//	@Summary		用户注册
//	@Description	使用邮箱和密码注册新账号，成功后直接返回访问令牌
//	@Tags			认证
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.SignupRequest	true	"注册请求"
//	@Success		201		{object}	types.AuthResponse	"注册成功"
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Failure		409		{object}	map[string]string	"邮箱已注册"
//	@Router			/api/v1/auth/signup [post]
func Signup(c *gin.Context) {
	l := log.Logger()

	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid signup request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := service.AuthProvider(c.Request.Context())

	user, token, expiresIn, err := p.Signup(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}

		l.Error().Err(err).Msg("signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{
		Token:     token,
		ExpiresIn: int(expiresIn),
		User:      user.Email,
	})
}

// Login 登录并返回访问令牌.
//
//	@Summary		用户登录
//	@Description	使用邮箱和密码登录，返回访问令牌
//	@Tags			认证
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.LoginRequest	true	"登录请求"
//	@Success		200		{object}	types.AuthResponse	"登录成功"
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Failure		401		{object}	map[string]string	"凭证无效"
//	@Router			/api/v1/auth/login [post]
func Login(c *gin.Context) {
	l := log.Logger()

	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	p := service.AuthProvider(c.Request.Context())

	user, token, expiresIn, err := p.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		l.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		Token:     token,
		ExpiresIn: int(expiresIn),
		User:      user.Email,
	})
}

// Logout 注销当前访问令牌.
//
//	@Summary		退出登录
//	@Description	将当前访问令牌加入黑名单，直到其自然过期
//	@Tags			认证
//	@Produce		json
//	@Success		200	{object}	map[string]string	"已退出"
//	@Failure		401	{object}	map[string]string	"缺少或无效令牌"
//	@Router			/api/v1/auth/logout [post]
func Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	p := service.AuthProvider(c.Request.Context())

	if err := p.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is invalid"})
		return
	}

	// 退出后回到 unknown，下一次会话探测重新落定
	service.SessionGate().Reset()

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session 探测当前会话状态.
//
//	@Summary		会话探测
//	@Description	根据请求携带的令牌返回会话状态（authenticated/anonymous）
//	@Tags			认证
//	@Produce		json
//	@Success		200	{object}	types.SessionResponse	"会话状态"
//	@Router			/api/v1/auth/session [get]
func Session(c *gin.Context) {
	p := service.AuthProvider(c.Request.Context())

	state, claims := service.SessionGate().ResolveToken(c.Request.Context(), p.Tokens(), bearerToken(c))

	resp := types.SessionResponse{State: state}
	if claims != nil {
		resp.User = claims.Email
	}

	c.JSON(http.StatusOK, resp)
}
