package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yeisme/ngdrive/pkg/cache"
)

// previewLink 测试用的预览链接结构体.
type previewLink struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
	Mode     string `json:"mode"`
}

// mockKVStore 模拟KV存储实现，用于单元测试.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestCacheSetGet 测试基本的设置和获取.
func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())

	link := previewLink{FileName: "report.pdf", URL: "https://minio.local/report.pdf?sig=abc", Mode: "inline"}
	if err := cache.Set(ctx, c, "preview:report.pdf", link, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get[previewLink](ctx, c, "preview:report.pdf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got != link {
		t.Errorf("got %+v, want %+v", got, link)
	}
}

// TestCacheGetMiss 测试缓存未命中.
func TestCacheGetMiss(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())

	if _, err := cache.Get[previewLink](ctx, c, "preview:missing.pdf"); err == nil {
		t.Error("expected error for missing key")
	}
}

// TestCacheDelete 测试删除缓存键.
func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())

	if err := cache.Set(ctx, c, "k", 42, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := c.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}

	if exists {
		t.Error("key should not exist after delete")
	}
}

// TestCacheGetOrSet 测试GetOrSet模式.
func TestCacheGetOrSet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())

	calls := 0
	getter := func() (previewLink, error) {
		calls++
		return previewLink{FileName: "notes.txt", URL: "https://minio.local/notes.txt", Mode: "inline"}, nil
	}

	first, err := cache.GetOrSet(ctx, c, "preview:notes.txt", getter, time.Hour)
	if err != nil {
		t.Fatalf("GetOrSet failed: %v", err)
	}

	second, err := cache.GetOrSet(ctx, c, "preview:notes.txt", getter, time.Hour)
	if err != nil {
		t.Fatalf("GetOrSet failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("getter called %d times, want 1", calls)
	}

	if first != second {
		t.Errorf("cached value changed: %+v vs %+v", first, second)
	}
}

// TestCacheGetOrSetGetterError 测试getter失败时错误透传.
func TestCacheGetOrSetGetterError(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())

	wantErr := errors.New("upstream unavailable")
	_, err := cache.GetOrSet(ctx, c, "preview:bad.pdf", func() (previewLink, error) {
		return previewLink{}, wantErr
	}, time.Hour)

	if !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want %v", err, wantErr)
	}
}

// TestCacheClear 测试清空缓存.
func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())

	for i := range 3 {
		if err := cache.Set(ctx, c, fmt.Sprintf("k%d", i), i, 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	for i := range 3 {
		exists, _ := c.Exists(ctx, fmt.Sprintf("k%d", i))
		if exists {
			t.Errorf("k%d should be gone after Clear", i)
		}
	}
}

// BenchmarkCacheSet 缓存写入基准测试.
func BenchmarkCacheSet(b *testing.B) {
	ctx := context.Background()
	c := cache.NewCache(newMockKVStore())
	link := previewLink{FileName: "report.pdf", URL: "https://minio.local/report.pdf", Mode: "inline"}

	for b.Loop() {
		_ = cache.Set(ctx, c, "preview:report.pdf", link, time.Hour)
	}
}
