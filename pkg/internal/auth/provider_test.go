package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/ngdrive/pkg/internal/auth"
)

func newTestProvider(t *testing.T) *auth.Provider {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	p, err := auth.NewProvider(db, newTestStore(t), testAuthConfig())
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	return p
}

// TestSignupLogin 测试注册后可用同一凭证登录.
func TestSignupLogin(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	user, token, expiresIn, err := p.Signup(ctx, "alice@example.com", "s3cret-pw", "Alice")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if user.ID == 0 || token == "" || expiresIn <= 0 {
		t.Fatalf("unexpected signup result: id=%d token=%q expiresIn=%d", user.ID, token, expiresIn)
	}

	if user.PasswordHash == "s3cret-pw" {
		t.Fatal("password stored in plain text")
	}

	got, loginToken, _, err := p.Login(ctx, "alice@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if got.ID != user.ID {
		t.Errorf("login user id = %d, want %d", got.ID, user.ID)
	}

	if loginToken == "" {
		t.Error("Login returned empty token")
	}

	if got.LastLoginAt == nil {
		t.Error("LastLoginAt not set after login")
	}
}

// TestSignupDuplicateEmail 测试重复邮箱注册被拒绝.
func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if _, _, _, err := p.Signup(ctx, "bob@example.com", "password1", ""); err != nil {
		t.Fatalf("first Signup failed: %v", err)
	}

	_, _, _, err := p.Signup(ctx, "bob@example.com", "password2", "")
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
}

// TestLoginWrongPassword 测试错误密码与未知邮箱返回同一错误.
func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if _, _, _, err := p.Signup(ctx, "carol@example.com", "right-pw", ""); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if _, _, _, err := p.Login(ctx, "carol@example.com", "wrong-pw"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	if _, _, _, err := p.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

// TestLogoutInvalidatesToken 测试退出后令牌不可再用.
func TestLogoutInvalidatesToken(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, token, _, err := p.Signup(ctx, "dave@example.com", "passw0rd", "")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if err := p.Logout(ctx, token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := p.Tokens().Validate(ctx, token); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Errorf("got %v, want ErrTokenRevoked", err)
	}
}
