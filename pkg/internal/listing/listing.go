// Package listing 维护对象列表的内存快照.
// 快照由 Fetcher 从对象存储拉取，按文件名升序排列；拉取失败时保留旧快照.
// 并发刷新通过 singleflight 合并为一次拉取.
package listing

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// Fetcher 拉取完整对象列表.
type Fetcher interface {
	Fetch(ctx context.Context) ([]types.FileObject, error)
}

// FetcherFunc 函数适配器.
type FetcherFunc func(ctx context.Context) ([]types.FileObject, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]types.FileObject, error) {
	return f(ctx)
}

// Cache 对象列表快照缓存.
type Cache struct {
	fetcher   Fetcher
	mu        sync.RWMutex
	snapshot  []types.FileObject
	fetchedAt time.Time
	populated bool
	version   uint64
	sf        singleflight.Group
}

// NewCache 创建快照缓存.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Refresh 强制刷新快照，并发调用合并为一次拉取.
// 拉取失败时旧快照保持不变，错误原样返回.
func (c *Cache) Refresh(ctx context.Context) ([]types.FileObject, error) {
	v, err, _ := c.sf.Do("refresh", func() (any, error) {
		files, err := c.fetcher.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		sortByName(files)

		c.mu.Lock()
		c.snapshot = files
		c.fetchedAt = time.Now()
		c.populated = true
		c.version++
		c.mu.Unlock()

		return files, nil
	})
	if err != nil {
		return nil, err
	}

	files, _ := v.([]types.FileObject)

	return copyFiles(files), nil
}

// Get 返回当前快照；首次调用时触发拉取.
func (c *Cache) Get(ctx context.Context) ([]types.FileObject, error) {
	c.mu.RLock()
	populated := c.populated
	snapshot := c.snapshot
	c.mu.RUnlock()

	if populated {
		return copyFiles(snapshot), nil
	}

	return c.Refresh(ctx)
}

// Current 返回当前快照及其拉取时间，不触发拉取.
func (c *Cache) Current() ([]types.FileObject, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return copyFiles(c.snapshot), c.fetchedAt, c.populated
}

// Upsert 将对象并入快照（上传成功后调用），同名对象就地覆盖.
func (c *Cache) Upsert(obj types.FileObject) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.version++

	for i, f := range c.snapshot {
		if f.Name == obj.Name {
			c.snapshot[i] = obj
			return
		}
	}

	c.snapshot = append(c.snapshot, obj)
	sortByName(c.snapshot)
}

// Remove 从快照中乐观移除对象（删除成功后调用）.
func (c *Cache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, f := range c.snapshot {
		if f.Name == name {
			c.snapshot = append(c.snapshot[:i], c.snapshot[i+1:]...)
			c.version++

			return
		}
	}
}

// Version 返回快照版本号，任何变更（刷新、并入、移除）都会递增.
// 下游缓存可将其编入缓存键，使旧版本的条目随变更立即失效.
func (c *Cache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// Contains 判断快照中是否存在指定对象.
func (c *Cache) Contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, f := range c.snapshot {
		if f.Name == name {
			return true
		}
	}

	return false
}

func sortByName(files []types.FileObject) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
}

func copyFiles(files []types.FileObject) []types.FileObject {
	out := make([]types.FileObject, len(files))
	copy(out, files)

	return out
}
