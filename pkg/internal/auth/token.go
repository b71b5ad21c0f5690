// Package auth 提供用户注册、登录与基于 JWT 的会话管理.
//
// 访问令牌采用 HS256 签名，退出登录时令牌进入 KV 黑名单，
// 黑名单键的 TTL 与令牌剩余有效期一致，过期后自动清理.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
)

// blacklistPrefix 黑名单键前缀，值为占位字节.
const blacklistPrefix = "jwt:blacklist:"

var (
	// ErrTokenInvalid 令牌无法解析或签名不匹配.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenRevoked 令牌已被注销.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims 访问令牌负载.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager 负责令牌的签发、校验与注销.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	store  kv.KVStore
}

// NewTokenManager 创建令牌管理器，store 用于黑名单，可为 nil（不支持注销）.
func NewTokenManager(cfg *configs.AuthConfig, store kv.KVStore) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.GetTokenTTL(),
		store:  store,
	}
}

// Generate 为用户签发访问令牌，返回令牌与有效期（秒）.
func (m *TokenManager) Generate(user *model.User) (string, int64, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ngdrive",
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return signed, int64(m.ttl.Seconds()), nil
}

// Validate 校验令牌签名与有效期，并检查黑名单.
func (m *TokenManager) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if m.store != nil {
		revoked, exErr := m.store.Exists(ctx, blacklistPrefix+tokenString)
		if exErr == nil && revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Revoke 将令牌加入黑名单，直到其自然过期.
func (m *TokenManager) Revoke(ctx context.Context, tokenString string) error {
	if m.store == nil {
		return errors.New("token revocation requires a kv store")
	}

	claims, err := m.Validate(ctx, tokenString)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}

		return err
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	return m.store.Set(ctx, blacklistPrefix+tokenString, []byte("1"), remaining)
}
