package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
)

var (
	// ErrEmailTaken 注册邮箱已存在.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 邮箱不存在或密码错误，不区分两者以避免探测.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Provider 用户账号与会话令牌的统一入口.
type Provider struct {
	db         *gorm.DB
	tokens     *TokenManager
	bcryptCost int
}

// NewProvider 创建认证服务，自动迁移用户表.
func NewProvider(db *gorm.DB, store kv.KVStore, cfg *configs.AuthConfig) (*Provider, error) {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("migrate user table: %w", err)
	}

	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Provider{
		db:         db,
		tokens:     NewTokenManager(cfg, store),
		bcryptCost: cost,
	}, nil
}

// Tokens 返回底层令牌管理器，供中间件校验使用.
func (p *Provider) Tokens() *TokenManager {
	return p.tokens
}

// Signup 注册新用户并直接签发令牌.
func (p *Provider) Signup(ctx context.Context, email, password, displayName string) (*model.User, string, int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.bcryptCost)
	if err != nil {
		return nil, "", 0, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}

	err = p.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", 0, ErrEmailTaken
		}

		// 方言未实现 ErrDuplicatedKey 时回退到存在性检查
		var existing model.User
		if lookupErr := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; lookupErr == nil {
			return nil, "", 0, ErrEmailTaken
		}

		return nil, "", 0, fmt.Errorf("create user: %w", err)
	}

	token, expiresIn, err := p.tokens.Generate(user)
	if err != nil {
		return nil, "", 0, err
	}

	return user, token, expiresIn, nil
}

// Login 校验密码并签发令牌，成功后更新最近登录时间.
func (p *Provider) Login(ctx context.Context, email, password string) (*model.User, string, int64, error) {
	var user model.User

	err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", 0, ErrInvalidCredentials
		}

		return nil, "", 0, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", 0, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	// 登录时间更新失败不影响登录结果
	_ = p.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error

	token, expiresIn, err := p.tokens.Generate(&user)
	if err != nil {
		return nil, "", 0, err
	}

	return &user, token, expiresIn, nil
}

// Logout 注销令牌.
func (p *Provider) Logout(ctx context.Context, tokenString string) error {
	return p.tokens.Revoke(ctx, tokenString)
}
