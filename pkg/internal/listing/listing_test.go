package listing_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/yeisme/ngdrive/pkg/internal/listing"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// stubFetcher 可编程的 Fetcher 实现.
type stubFetcher struct {
	mu    sync.Mutex
	files []types.FileObject
	err   error
	calls int32
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]types.FileObject, error) {
	atomic.AddInt32(&s.calls, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	out := make([]types.FileObject, len(s.files))
	copy(out, s.files)

	return out, nil
}

func (s *stubFetcher) set(files []types.FileObject, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = files
	s.err = err
}

func objs(names ...string) []types.FileObject {
	out := make([]types.FileObject, 0, len(names))
	for _, n := range names {
		out = append(out, types.FileObject{Name: n})
	}

	return out
}

// TestRefreshSortsByName 测试刷新后按文件名升序.
func TestRefreshSortsByName(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("c.pdf", "a.pdf", "b.pdf"), nil)

	cache := listing.NewCache(f)

	files, err := cache.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	want := []string{"a.pdf", "b.pdf", "c.pdf"}
	for i, w := range want {
		if files[i].Name != w {
			t.Errorf("files[%d] = %q, want %q", i, files[i].Name, w)
		}
	}
}

// TestGetPopulatesOnce 测试 Get 首次触发拉取，后续返回快照.
func TestGetPopulatesOnce(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("a.pdf"), nil)

	cache := listing.NewCache(f)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}

	if n := atomic.LoadInt32(&f.calls); n != 1 {
		t.Errorf("expected 1 fetch, got %d", n)
	}
}

// TestRefreshFailureKeepsSnapshot 测试拉取失败时旧快照不变.
func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("a.pdf", "b.pdf"), nil)

	cache := listing.NewCache(f)

	if _, err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	f.set(nil, errors.New("bucket unavailable"))

	if _, err := cache.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error, got nil")
	}

	files, _, populated := cache.Current()
	if !populated {
		t.Fatal("cache should remain populated after failed refresh")
	}

	if len(files) != 2 {
		t.Errorf("expected old snapshot of 2 files, got %d", len(files))
	}
}

// TestUpsertAndRemove 测试上传并入与乐观移除.
func TestUpsertAndRemove(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("a.pdf", "c.pdf"), nil)

	cache := listing.NewCache(f)

	if _, err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// 新对象并入并保持有序
	cache.Upsert(types.FileObject{Name: "b.pdf"})

	files, _, _ := cache.Current()
	want := []string{"a.pdf", "b.pdf", "c.pdf"}

	for i, w := range want {
		if files[i].Name != w {
			t.Errorf("files[%d] = %q, want %q", i, files[i].Name, w)
		}
	}

	// 同名覆盖不增加长度
	cache.Upsert(types.FileObject{Name: "b.pdf", Size: 42})

	files, _, _ = cache.Current()
	if len(files) != 3 {
		t.Errorf("expected 3 files after overwrite, got %d", len(files))
	}

	if files[1].Size != 42 {
		t.Errorf("expected overwritten size 42, got %d", files[1].Size)
	}

	// 乐观移除
	cache.Remove("b.pdf")

	if cache.Contains("b.pdf") {
		t.Error("b.pdf should have been removed")
	}

	// 移除不存在的对象无副作用
	cache.Remove("zzz.pdf")

	files, _, _ = cache.Current()
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

// TestGetReturnsCopy 测试返回的切片为副本，外部修改不影响快照.
func TestGetReturnsCopy(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("a.pdf"), nil)

	cache := listing.NewCache(f)

	files, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	files[0].Name = "mutated.pdf"

	again, _ := cache.Get(context.Background())
	if again[0].Name != "a.pdf" {
		t.Error("snapshot was mutated through returned slice")
	}
}

// TestConcurrentRefresh 测试并发刷新合并为少量拉取且无竞争.
func TestConcurrentRefresh(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("a.pdf"), nil)

	cache := listing.NewCache(f)

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = cache.Refresh(context.Background())
		}()
	}

	wg.Wait()

	// singleflight 将并发刷新合并，拉取次数应远小于 goroutine 数
	if n := atomic.LoadInt32(&f.calls); n > 16 {
		t.Errorf("unexpected fetch count: %d", n)
	}

	files, _, populated := cache.Current()
	if !populated || len(files) != 1 {
		t.Errorf("unexpected snapshot state: populated=%v len=%d", populated, len(files))
	}
}

func TestVersionAdvancesOnMutation(t *testing.T) {
	f := &stubFetcher{}
	f.set(objs("a.pdf", "b.pdf"), nil)

	cache := listing.NewCache(f)

	if v := cache.Version(); v != 0 {
		t.Fatalf("fresh cache version = %d, want 0", v)
	}

	if _, err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	afterRefresh := cache.Version()
	if afterRefresh == 0 {
		t.Error("refresh did not advance version")
	}

	cache.Upsert(types.FileObject{Name: "c.xlsx"})

	afterUpsert := cache.Version()
	if afterUpsert <= afterRefresh {
		t.Error("upsert did not advance version")
	}

	cache.Remove("a.pdf")

	afterRemove := cache.Version()
	if afterRemove <= afterUpsert {
		t.Error("remove did not advance version")
	}

	// 移除不存在的对象不算变更
	cache.Remove("ghost.bin")

	if v := cache.Version(); v != afterRemove {
		t.Errorf("no-op remove changed version: %d != %d", v, afterRemove)
	}
}
