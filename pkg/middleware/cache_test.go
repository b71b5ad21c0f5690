package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/ngdrive/pkg/cache"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
	"github.com/yeisme/ngdrive/pkg/middleware"
)

// waitForKey 等待异步写入的缓存条目落地.
func waitForKey(t *testing.T, c *appcache.Cache, key string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := c.Exists(context.Background(), key); ok {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("cache entry %q never stored", key)
}

// 缓存键编入列表版本号后，乐观删除（版本递增）必须立即穿透缓存，
// 否则已删除对象会在 TTL 内继续出现在列表响应里.
func TestCacheMiddlewareVersionedKeyInvalidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	cacheClient := appcache.NewCache(store)

	var version atomic.Uint64

	var mu sync.Mutex

	files := []string{"a.pdf", "old.zip"}

	cfg := middleware.DefaultCacheConfig(cacheClient)
	cfg.Methods = []string{http.MethodGet}
	cfg.KeyFunc = func(c *gin.Context) string {
		return fmt.Sprintf("files:v%d", version.Load())
	}

	e := gin.New()
	e.GET("/files", middleware.CacheMiddleware(cfg), func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()

		c.JSON(http.StatusOK, gin.H{"files": files})
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/files", nil)
		e.ServeHTTP(w, req)

		return w
	}

	first := get()
	if first.Code != http.StatusOK || !strings.Contains(first.Body.String(), "old.zip") {
		t.Fatalf("unexpected first response: %d %s", first.Code, first.Body.String())
	}

	waitForKey(t, cacheClient, "files:v0")

	second := get()
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected cache hit, got %q", second.Header().Get("X-Cache"))
	}

	// 模拟确认删除后的乐观移除：快照变化并递增版本
	mu.Lock()
	files = []string{"a.pdf"}
	mu.Unlock()
	version.Add(1)

	third := get()
	if strings.Contains(third.Body.String(), "old.zip") {
		t.Fatalf("deleted object still visible in listing response: %s", third.Body.String())
	}
}
