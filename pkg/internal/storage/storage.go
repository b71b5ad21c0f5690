// Package storage 聚合对象存储、数据库、键值存储和消息队列等存储资源.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	s3Client := mgr.GetS3Client()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"fmt"
	"sync"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/listing"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	dbc "github.com/yeisme/ngdrive/pkg/internal/storage/db"
	kvc "github.com/yeisme/ngdrive/pkg/internal/storage/kv"
	mqc "github.com/yeisme/ngdrive/pkg/internal/storage/mq"
	s3c "github.com/yeisme/ngdrive/pkg/internal/storage/s3"
	"github.com/yeisme/ngdrive/pkg/internal/types"
	nlog "github.com/yeisme/ngdrive/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	S3      *s3c.Client
	DB      *dbc.Client
	KV      *kvc.Client
	MQ      *mqc.Client
	Listing *listing.Cache
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.DB = dbi
		}

		// 文件元数据表迁移
		if e := m.DB.DB.AutoMigrate(&model.FileRecord{}); e != nil {
			err = fmt.Errorf("migrate file records: %w", e)
			return
		}

		// S3
		if s3i, e := s3c.New(ctx); e != nil {
			err = e
			return
		} else {
			m.S3 = s3i
		}

		// KV
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			err = e
			return
		} else {
			m.KV = kvi
		}

		// MQ
		if mqi, e := mqc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.MQ = mqi
		}

		// 对象列表快照，由 S3 拉取
		m.Listing = listing.NewCache(newBucketFetcher(m.S3))

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetListing 获取对象列表快照缓存.
func (m *Manager) GetListing() *listing.Cache {
	return m.Listing
}

// bucketFetcher 从配置的 bucket 拉取对象列表，上限取自文件配置.
type bucketFetcher struct {
	cli *s3c.Client
}

func newBucketFetcher(cli *s3c.Client) listing.Fetcher {
	return &bucketFetcher{cli: cli}
}

// Fetch 列举 bucket 内对象并映射为 FileObject.
func (b *bucketFetcher) Fetch(ctx context.Context) ([]types.FileObject, error) {
	cfg := configs.GetConfig()
	limit := cfg.Files.ListLimit

	files := make([]types.FileObject, 0, limit)

	for obj := range b.cli.ListObjects(ctx, cfg.S3.BucketName, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		files = append(files, types.FileObject{
			Name:         obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})

		if len(files) >= limit {
			break
		}
	}

	return files, nil
}
