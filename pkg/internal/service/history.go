package service

import (
	"context"
	"sync"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/history"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

var (
	historyOnce sync.Once
	tracker     *history.Tracker
)

// historyTracker 返回进程级浏览记录跟踪器单例.
// 同一用户的读改写必须经过同一把锁，按请求新建实例会丢失并发更新.
func historyTracker(store kv.KVStore) *history.Tracker {
	historyOnce.Do(func() {
		tracker = history.NewTracker(store, configs.GetConfig().Files.HistoryCapacity)
	})

	return tracker
}

// History 返回用户的最近浏览记录，按浏览时间从新到旧.
func (fs *FileService) History(ctx context.Context, user string) (*types.HistoryResponse, error) {
	entries, err := fs.tracker.List(ctx, user)
	if err != nil {
		return nil, err
	}

	return &types.HistoryResponse{
		Entries: entries,
		Total:   len(entries),
	}, nil
}

// ClearHistory 清空用户的浏览记录.
func (fs *FileService) ClearHistory(ctx context.Context, user string) error {
	return fs.tracker.Clear(ctx, user)
}
