package service

import (
	"context"
	"sync"

	"github.com/yeisme/ngdrive/pkg/configs"
	ctxPkg "github.com/yeisme/ngdrive/pkg/context"
	"github.com/yeisme/ngdrive/pkg/internal/auth"
	nlog "github.com/yeisme/ngdrive/pkg/log"
)

var (
	authProvider *auth.Provider
	authOnce     sync.Once

	sessionGate *auth.Gate
	gateOnce    sync.Once
)

// SessionGate 返回进程级会话状态机单例.
// 会话探测与登出共享同一实例，监听者注册才有意义.
func SessionGate() *auth.Gate {
	gateOnce.Do(func() {
		sessionGate = auth.NewGate()
	})

	return sessionGate
}

// AuthProvider 返回进程级认证服务单例，首次调用时完成用户表迁移.
func AuthProvider(c context.Context) *auth.Provider {
	authOnce.Do(func() {
		dbc := ctxPkg.GetDBClient(c)
		kvc := ctxPkg.GetKVClient(c)

		if dbc == nil || dbc.DB == nil || kvc == nil {
			nlog.Logger().Fatal().Msg("storage clients not initialized")
		}

		p, err := auth.NewProvider(dbc.DB, kvc, &configs.GetConfig().Auth)
		if err != nil {
			nlog.Logger().Fatal().Err(err).Msg("init auth provider failed")
		}

		authProvider = p
	})

	return authProvider
}
