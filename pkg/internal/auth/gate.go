package auth

import (
	"context"
	"sync"

	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// Gate 会话状态机，初始为 unknown，探测后进入 authenticated 或 anonymous.
// 状态变化时同步通知所有监听者，监听者回调在持锁之外执行.
type Gate struct {
	mu        sync.RWMutex
	state     types.SessionState
	listeners map[int]func(types.SessionState)
	nextID    int
}

// NewGate 创建处于 unknown 状态的会话门.
func NewGate() *Gate {
	return &Gate{
		state:     types.SessionUnknown,
		listeners: make(map[int]func(types.SessionState)),
	}
}

// State 返回当前会话状态.
func (g *Gate) State() types.SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.state
}

// OnStateChange 注册状态变化监听者，返回注销函数.
// 监听者生命周期结束时必须调用注销函数，重复调用无副作用.
func (g *Gate) OnStateChange(fn func(types.SessionState)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.listeners[id] = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()

		delete(g.listeners, id)
	}
}

// Resolve 根据令牌校验结果落定会话状态.
// claims 为 nil 视为匿名，状态未变化时不触发通知.
func (g *Gate) Resolve(claims *Claims) types.SessionState {
	next := types.SessionAnonymous
	if claims != nil {
		next = types.SessionAuthenticated
	}

	return g.transition(next)
}

// ResolveToken 校验令牌并落定状态，返回状态与解析出的身份.
func (g *Gate) ResolveToken(ctx context.Context, tokens *TokenManager, tokenString string) (types.SessionState, *Claims) {
	if tokenString == "" {
		return g.Resolve(nil), nil
	}

	claims, err := tokens.Validate(ctx, tokenString)
	if err != nil {
		return g.Resolve(nil), nil
	}

	return g.Resolve(claims), claims
}

// Reset 回到 unknown 状态，用于退出登录后的重新探测.
func (g *Gate) Reset() {
	g.transition(types.SessionUnknown)
}

func (g *Gate) transition(next types.SessionState) types.SessionState {
	g.mu.Lock()

	if g.state == next {
		g.mu.Unlock()
		return next
	}

	g.state = next
	listeners := make([]func(types.SessionState), 0, len(g.listeners))

	for _, fn := range g.listeners {
		listeners = append(listeners, fn)
	}
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}

	return next
}
