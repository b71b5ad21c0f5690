package kv_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
)

// TestMemoryKVBasic 测试内存 KV 的基本操作.
func TestMemoryKVBasic(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close()

	if err := store.Set(ctx, "history:alice", []byte(`[]`), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "history:alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(got) != `[]` {
		t.Errorf("expected %q, got %q", `[]`, string(got))
	}

	exists, err := store.Exists(ctx, "history:alice")
	if err != nil || !exists {
		t.Errorf("expected key to exist, got exists=%v err=%v", exists, err)
	}

	if err := store.Delete(ctx, "history:alice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "history:alice"); err == nil {
		t.Error("expected error for deleted key, got nil")
	}
}

// TestMemoryKVTTL 测试内存 KV 的 TTL 惰性过期.
func TestMemoryKVTTL(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	defer store.Close()

	// 已过期的负 TTL 不包装，等价于无过期
	if err := store.Set(ctx, "k1", []byte("v1"), -1); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, err := store.Get(ctx, "k1"); err != nil {
		t.Errorf("expected no expiry for non-positive ttl, got %v", err)
	}

	// 1秒 TTL：立即可读
	if err := store.Set(ctx, "k2", []byte("v2"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, err := store.Get(ctx, "k2"); err != nil {
		t.Errorf("expected key readable before expiry, got %v", err)
	}

	// 等待过期后读取应失败
	time.Sleep(1100 * time.Millisecond)

	if _, err := store.Get(ctx, "k2"); err == nil {
		t.Error("expected error for expired key, got nil")
	}

	exists, err := store.Exists(ctx, "k2")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}

	if exists {
		t.Error("expected expired key to not exist")
	}
}

// TestGroupcacheKVBasic 测试 Groupcache KV 的基本操作.
func TestGroupcacheKVBasic(t *testing.T) {
	ctx := context.Background()

	cfg := &configs.GroupcacheKVConfig{
		Name:       fmt.Sprintf("test-groupcache-%d", time.Now().UnixNano()),
		CacheBytes: 32 * 1024 * 1024, // 32MB
		Peers:      []string{},
		Self:       "http://127.0.0.1:0",
	}

	store, err := kv.NewKVStore(ctx, kv.KVTypeGroupcache, cfg)
	if err != nil {
		t.Fatalf("create groupcache kv: %v", err)
	}
	defer store.Close()

	if err := store.Set(ctx, "listing", []byte("snapshot"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "listing")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(got) != "snapshot" {
		t.Errorf("expected %q, got %q", "snapshot", string(got))
	}

	keys, err := store.Keys(ctx, "")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}

	if len(keys) != 1 || keys[0] != "listing" {
		t.Errorf("expected [listing], got %v", keys)
	}
}

// TestRegisteredKVTypes 测试工厂注册列表覆盖所有内置类型.
func TestRegisteredKVTypes(t *testing.T) {
	types := kv.GetRegisteredKVTypes()

	want := map[kv.KVType]bool{
		kv.KVTypeMemory:     false,
		kv.KVTypeRedis:      false,
		kv.KVTypeNATS:       false,
		kv.KVTypeGroupcache: false,
	}

	for _, typ := range types {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}

	for typ, seen := range want {
		if !seen {
			t.Errorf("expected KV type %q to be registered", typ)
		}
	}
}

// TestNewKVStoreUnsupported 测试未注册类型返回错误.
func TestNewKVStoreUnsupported(t *testing.T) {
	_, err := kv.NewKVStore(context.Background(), kv.KVType("bolt"), nil)
	if err == nil {
		t.Error("expected error for unsupported KV type, got nil")
	}
}

func BenchmarkMemoryKV(b *testing.B) {
	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		b.Fatalf("create memory kv: %v", err)
	}

	benchKV(b, "memory", store)
	_ = store.Close()
}

// Optional: enable with ENABLE_REDIS_BENCH=1 and REDIS_ADDR set (default 127.0.0.1:6379).
func BenchmarkRedisKV(b *testing.B) {
	if os.Getenv("ENABLE_REDIS_BENCH") == "" {
		b.Skip("set ENABLE_REDIS_BENCH=1 to enable")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	cfg := &configs.RedisKVConfig{Addr: addr, Password: "", DB: 0}

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeRedis, cfg)
	if err != nil {
		b.Skipf("redis not available: %v", err)
		return
	}

	benchKV(b, "redis", store)
	_ = store.Close()
}

// benchKV 执行基本的 Set/Get/Delete 基准测试.
func benchKV(b *testing.B, name string, store kv.KVStore) {
	ctx := context.Background()
	payload := []byte(`{"fileName":"report.pdf","viewedAt":"2025-01-01T00:00:00Z"}`)

	b.Run(name, func(b *testing.B) {
		b.ReportAllocs()

		for i := 0; b.Loop(); i++ {
			key := fmt.Sprintf("bench-%s-%d", name, i)
			if err := store.Set(ctx, key, payload, 0); err != nil {
				b.Fatalf("set failed: %v", err)
			}

			if _, err := store.Get(ctx, key); err != nil {
				b.Fatalf("get failed: %v", err)
			}

			if err := store.Delete(ctx, key); err != nil {
				b.Fatalf("delete failed: %v", err)
			}
		}
	})
}
