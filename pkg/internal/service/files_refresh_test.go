package service

import (
	"context"
	"testing"
	"time"

	"github.com/yeisme/ngdrive/pkg/internal/listing"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// 上传/删除成功后必须触发一次后台快照刷新，
// 让乐观更新与对象存储的真实状态对齐.
func TestRefreshListingAsyncPullsSnapshot(t *testing.T) {
	fetched := make(chan struct{}, 1)

	cache := listing.NewCache(listing.FetcherFunc(func(ctx context.Context) ([]types.FileObject, error) {
		fetched <- struct{}{}

		return []types.FileObject{{Name: "a.pdf"}}, nil
	}))

	fs := &FileService{listing: cache}
	fs.refreshListingAsync()

	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh never pulled the listing")
	}

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		if files, _, populated := cache.Current(); populated && len(files) == 1 {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("snapshot never populated after background refresh")
}
