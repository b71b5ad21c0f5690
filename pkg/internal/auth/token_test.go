package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/auth"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
)

func testAuthConfig() *configs.AuthConfig {
	return &configs.AuthConfig{
		Enabled:       true,
		JWTSecret:     "test-jwt-secret-key-for-unit-tests",
		TokenTTLHours: 1,
		BcryptCost:    4,
	}
}

func newTestStore(t testing.TB) kv.KVStore {
	t.Helper()

	store, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewMemoryKV failed: %v", err)
	}

	return store
}

// TestTokenGenerateValidate 测试签发后的令牌可以通过校验.
func TestTokenGenerateValidate(t *testing.T) {
	ctx := context.Background()
	tm := auth.NewTokenManager(testAuthConfig(), newTestStore(t))
	user := &model.User{ID: 42, Email: "alice@example.com"}

	token, expiresIn, err := tm.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if token == "" {
		t.Fatal("Generate returned empty token")
	}

	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := tm.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.UserID != 42 || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v, want UserID 42 / alice@example.com", claims)
	}

	if claims.Issuer != "ngdrive" {
		t.Errorf("issuer = %q, want ngdrive", claims.Issuer)
	}
}

// TestTokenValidateTampered 测试篡改后的令牌被拒绝.
func TestTokenValidateTampered(t *testing.T) {
	ctx := context.Background()
	tm := auth.NewTokenManager(testAuthConfig(), newTestStore(t))

	token, _, err := tm.Generate(&model.User{ID: 1, Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Validate(ctx, token+"tampered"); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}

	if _, err := tm.Validate(ctx, "not-a-token"); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

// TestTokenValidateWrongSecret 测试其他密钥签发的令牌被拒绝.
func TestTokenValidateWrongSecret(t *testing.T) {
	ctx := context.Background()
	tm := auth.NewTokenManager(testAuthConfig(), newTestStore(t))

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-different-secret"
	other := auth.NewTokenManager(otherCfg, nil)

	token, _, err := other.Generate(&model.User{ID: 7, Email: "eve@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Validate(ctx, token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

// TestTokenRevoke 测试注销后的令牌进入黑名单.
func TestTokenRevoke(t *testing.T) {
	ctx := context.Background()
	tm := auth.NewTokenManager(testAuthConfig(), newTestStore(t))

	token, _, err := tm.Generate(&model.User{ID: 9, Email: "carol@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := tm.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	if _, err := tm.Validate(ctx, token); !errors.Is(err, auth.ErrTokenRevoked) {
		t.Errorf("got %v, want ErrTokenRevoked", err)
	}

	// 重复注销应幂等
	if err := tm.Revoke(ctx, token); err != nil {
		t.Errorf("second Revoke failed: %v", err)
	}
}
