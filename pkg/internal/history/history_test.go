package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/yeisme/ngdrive/pkg/internal/history"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
)

func newTracker(t *testing.T, capacity int) (*history.Tracker, kv.KVStore) {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return history.NewTracker(store, capacity), store
}

// TestRecordAndList 测试记录与读取，新条目在前.
func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, 5)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.pdf", "b.docx", "c.xlsx"} {
		if err := tracker.Record(ctx, "alice@example.com", name, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("record %s: %v", name, err)
		}
	}

	entries, err := tracker.List(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// 最近浏览的在最前
	want := []string{"c.xlsx", "b.docx", "a.pdf"}
	for i, w := range want {
		if entries[i].FileName != w {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].FileName, w)
		}
	}
}

// TestRecordDedup 测试同名条目去重后前置.
func TestRecordDedup(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, 5)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	names := []string{"a.pdf", "b.docx", "a.pdf"}
	for i, name := range names {
		if err := tracker.Record(ctx, "alice@example.com", name, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("record %s: %v", name, err)
		}
	}

	entries, _ := tracker.List(ctx, "alice@example.com")

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after dedup, got %d", len(entries))
	}

	if entries[0].FileName != "a.pdf" || entries[1].FileName != "b.docx" {
		t.Errorf("unexpected order after dedup: %v", entries)
	}

	// 前置条目应带最新时间戳
	if entries[0].ViewedAt != base.Add(2*time.Minute).Format(time.RFC3339) {
		t.Errorf("expected refreshed timestamp, got %s", entries[0].ViewedAt)
	}
}

// TestRecordEviction 测试超出容量时淘汰最旧条目.
func TestRecordEviction(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, 5)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	names := []string{"1.pdf", "2.pdf", "3.pdf", "4.pdf", "5.pdf", "6.pdf"}
	for i, name := range names {
		if err := tracker.Record(ctx, "alice@example.com", name, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("record %s: %v", name, err)
		}
	}

	entries, _ := tracker.List(ctx, "alice@example.com")

	if len(entries) != 5 {
		t.Fatalf("expected capacity 5, got %d", len(entries))
	}

	// 最旧的 1.pdf 被淘汰
	for _, e := range entries {
		if e.FileName == "1.pdf" {
			t.Error("oldest entry should have been evicted")
		}
	}

	if entries[0].FileName != "6.pdf" {
		t.Errorf("newest entry should be first, got %q", entries[0].FileName)
	}
}

// TestCorruptDataResets 测试持久化数据损坏时按空列表处理.
func TestCorruptDataResets(t *testing.T) {
	ctx := context.Background()
	tracker, store := newTracker(t, 5)

	// 写入非法 JSON
	if err := store.Set(ctx, history.Key("alice@example.com"), []byte("{not json"), 0); err != nil {
		t.Fatalf("seed corrupt data: %v", err)
	}

	entries, err := tracker.List(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("expected empty list for corrupt data, got %v", entries)
	}

	// 后续写入应正常覆盖损坏数据
	if err := tracker.Record(ctx, "alice@example.com", "fresh.pdf", time.Now()); err != nil {
		t.Fatalf("record after corrupt data: %v", err)
	}

	entries, _ = tracker.List(ctx, "alice@example.com")
	if len(entries) != 1 || entries[0].FileName != "fresh.pdf" {
		t.Errorf("expected [fresh.pdf], got %v", entries)
	}
}

// TestPerUserIsolation 测试不同用户的记录互不影响.
func TestPerUserIsolation(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, 5)

	if err := tracker.Record(ctx, "alice@example.com", "a.pdf", time.Now()); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := tracker.Record(ctx, "bob@example.com", "b.pdf", time.Now()); err != nil {
		t.Fatalf("record: %v", err)
	}

	aliceEntries, _ := tracker.List(ctx, "alice@example.com")
	bobEntries, _ := tracker.List(ctx, "bob@example.com")

	if len(aliceEntries) != 1 || aliceEntries[0].FileName != "a.pdf" {
		t.Errorf("unexpected alice history: %v", aliceEntries)
	}

	if len(bobEntries) != 1 || bobEntries[0].FileName != "b.pdf" {
		t.Errorf("unexpected bob history: %v", bobEntries)
	}
}

// TestClear 测试清空记录.
func TestClear(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(t, 5)

	if err := tracker.Record(ctx, "alice@example.com", "a.pdf", time.Now()); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := tracker.Clear(ctx, "alice@example.com"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries, _ := tracker.List(ctx, "alice@example.com")
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %v", entries)
	}
}
