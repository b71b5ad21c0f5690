// Package history 维护每个用户的最近浏览记录.
// 记录按浏览时间从新到旧排列，同名文件去重后前置，超出容量的最旧条目被淘汰.
// 持久化数据损坏时静默重置为空列表，不影响后续写入.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// DefaultCapacity 默认记录条数上限.
const DefaultCapacity = 5

const keyPrefix = "history:"

// Tracker 基于 KV 存储的浏览记录跟踪器.
type Tracker struct {
	store    kv.KVStore
	capacity int
	mu       sync.Mutex // 串行化同一进程内的读改写
}

// NewTracker 创建跟踪器，capacity 非正时使用默认容量.
func NewTracker(store kv.KVStore, capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Tracker{store: store, capacity: capacity}
}

// Key 返回用户记录的存储键.
func Key(user string) string {
	return keyPrefix + user
}

// List 返回用户的浏览记录，从新到旧；损坏或缺失的数据返回空列表.
func (t *Tracker) List(ctx context.Context, user string) ([]types.HistoryEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.load(ctx, user), nil
}

// Record 记录一次浏览并同步持久化.
// 同名条目先移除再前置，保证列表内文件名唯一.
func (t *Tracker) Record(ctx context.Context, user, fileName string, viewedAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.load(ctx, user)

	// 去重：移除已有的同名条目
	kept := make([]types.HistoryEntry, 0, len(entries)+1)
	kept = append(kept, types.HistoryEntry{
		FileName: fileName,
		ViewedAt: viewedAt.UTC().Format(time.RFC3339),
	})

	for _, e := range entries {
		if e.FileName == fileName {
			continue
		}

		kept = append(kept, e)
	}

	// 淘汰超出容量的最旧条目
	if len(kept) > t.capacity {
		kept = kept[:t.capacity]
	}

	return t.save(ctx, user, kept)
}

// Clear 清空用户的浏览记录.
func (t *Tracker) Clear(ctx context.Context, user string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(ctx, Key(user)); err != nil {
		return fmt.Errorf("clear history for %s: %w", user, err)
	}

	return nil
}

// load 读取并解析记录；任何读取或解析失败都按空列表处理.
func (t *Tracker) load(ctx context.Context, user string) []types.HistoryEntry {
	raw, err := t.store.Get(ctx, Key(user))
	if err != nil {
		return []types.HistoryEntry{}
	}

	var entries []types.HistoryEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return []types.HistoryEntry{}
	}

	return entries
}

// save 序列化并写回记录.
func (t *Tracker) save(ctx context.Context, user string, entries []types.HistoryEntry) error {
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history for %s: %w", user, err)
	}

	if err := t.store.Set(ctx, Key(user), raw, 0); err != nil {
		return fmt.Errorf("persist history for %s: %w", user, err)
	}

	return nil
}
