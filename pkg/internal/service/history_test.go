package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
)

// 浏览记录跟踪器必须是进程级单例：同一用户的读改写经过同一把锁，
// 按请求各自新建实例会让并发记录互相覆盖.
func TestHistoryTrackerSingleton(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	h1 := historyTracker(store)
	h2 := historyTracker(store)

	if h1 != h2 {
		t.Fatal("historyTracker returned distinct instances")
	}

	// 模拟两个并发请求各自拿到跟踪器后记录不同文件
	user := "reader@example.com"
	now := time.Now()

	var wg sync.WaitGroup

	for _, name := range []string{"a.pdf", "b.pdf"} {
		wg.Add(1)

		go func(fileName string) {
			defer wg.Done()

			if err := historyTracker(store).Record(ctx, user, fileName, now); err != nil {
				t.Errorf("record %s: %v", fileName, err)
			}
		}(name)
	}

	wg.Wait()

	entries, err := h1.List(ctx, user)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.FileName] = true
	}

	if !seen["a.pdf"] || !seen["b.pdf"] {
		t.Fatalf("expected both a.pdf and b.pdf, got %+v", entries)
	}
}
