package auth_test

import (
	"context"
	"testing"

	"github.com/yeisme/ngdrive/pkg/internal/auth"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// TestGateInitialState 测试会话门初始为 unknown.
func TestGateInitialState(t *testing.T) {
	g := auth.NewGate()

	if got := g.State(); got != types.SessionUnknown {
		t.Errorf("initial state = %q, want %q", got, types.SessionUnknown)
	}
}

// TestGateResolveToken 测试有效令牌与空令牌的状态落定.
func TestGateResolveToken(t *testing.T) {
	ctx := context.Background()
	tm := auth.NewTokenManager(testAuthConfig(), newTestStore(t))

	token, _, err := tm.Generate(&model.User{ID: 3, Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	g := auth.NewGate()

	state, claims := g.ResolveToken(ctx, tm, token)
	if state != types.SessionAuthenticated {
		t.Errorf("state = %q, want authenticated", state)
	}

	if claims == nil || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v, want alice@example.com", claims)
	}

	g2 := auth.NewGate()

	state, claims = g2.ResolveToken(ctx, tm, "")
	if state != types.SessionAnonymous || claims != nil {
		t.Errorf("empty token: state = %q claims = %+v, want anonymous/nil", state, claims)
	}

	g3 := auth.NewGate()
	if state, _ = g3.ResolveToken(ctx, tm, "garbage"); state != types.SessionAnonymous {
		t.Errorf("invalid token: state = %q, want anonymous", state)
	}
}

// TestGateStateChangeNotify 测试状态变化时监听者被通知.
func TestGateStateChangeNotify(t *testing.T) {
	g := auth.NewGate()

	var seen []types.SessionState

	g.OnStateChange(func(s types.SessionState) {
		seen = append(seen, s)
	})

	g.Resolve(nil)
	g.Resolve(nil) // 状态未变，不应重复通知
	g.Resolve(&auth.Claims{Email: "alice@example.com"})
	g.Reset()

	want := []types.SessionState{types.SessionAnonymous, types.SessionAuthenticated, types.SessionUnknown}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}

	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

// TestGateUnsubscribe 测试注销后的监听者不再收到通知.
func TestGateUnsubscribe(t *testing.T) {
	g := auth.NewGate()

	var first, second int

	unsubscribe := g.OnStateChange(func(types.SessionState) { first++ })
	g.OnStateChange(func(types.SessionState) { second++ })

	g.Resolve(nil)

	if first != 1 || second != 1 {
		t.Fatalf("before unsubscribe: first=%d second=%d, want 1/1", first, second)
	}

	unsubscribe()
	unsubscribe() // 重复注销无副作用

	g.Resolve(&auth.Claims{Email: "alice@example.com"})
	g.Reset()

	if first != 1 {
		t.Errorf("unsubscribed listener notified %d extra times", first-1)
	}

	if second != 3 {
		t.Errorf("remaining listener notifications = %d, want 3", second)
	}
}
