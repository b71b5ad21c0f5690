package service

import (
	"context"
	"errors"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/ngdrive/pkg/configs"
	ctxPkg "github.com/yeisme/ngdrive/pkg/context"
	"github.com/yeisme/ngdrive/pkg/internal/filter"
	"github.com/yeisme/ngdrive/pkg/internal/history"
	"github.com/yeisme/ngdrive/pkg/internal/listing"
	"github.com/yeisme/ngdrive/pkg/internal/storage/db"
	"github.com/yeisme/ngdrive/pkg/internal/storage/kv"
	"github.com/yeisme/ngdrive/pkg/internal/storage/mq"
	"github.com/yeisme/ngdrive/pkg/internal/storage/s3"
	"github.com/yeisme/ngdrive/pkg/internal/types"
	nlog "github.com/yeisme/ngdrive/pkg/log"
)

// ErrFileNotFound 请求的对象既不在列表快照也不在对象存储中.
var ErrFileNotFound = errors.New("file not found")

// FileService 负责文件相关业务逻辑（存储、列表快照、浏览记录等），不处理 HTTP 细节.
type FileService struct {
	s3Client *s3.Client
	dbClient *db.Client
	mqClient *mq.Client
	kvClient *kv.Client
	listing  *listing.Cache
	tracker  *history.Tracker
}

// NewFileService 从 context 获取依赖实例.
func NewFileService(c context.Context) *FileService {
	s3c := ctxPkg.GetS3Client(c)
	dbc := ctxPkg.GetDBClient(c)
	mqc := ctxPkg.GetMQClient(c)
	kvc := ctxPkg.GetKVClient(c)
	lst := ctxPkg.GetListing(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if s3c == nil || s3c.Client == nil || dbc == nil || dbc.DB == nil || mqc == nil || kvc == nil || lst == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &FileService{
		s3Client: s3c,
		dbClient: dbc,
		mqClient: mqc,
		kvClient: kvc,
		listing:  lst,
		tracker:  historyTracker(kvc),
	}
}

// ListFiles 基于列表快照返回按分类与关键字过滤后的文件列表.
// 快照未填充时会触发一次拉取，过滤条件为 AND 关系.
func (fs *FileService) ListFiles(ctx context.Context, category filter.Category, query string) (*types.ListFilesResponse, error) {
	files, err := fs.listing.Get(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filter.Apply(files, category, query)

	resp := &types.ListFilesResponse{
		Files: filtered,
		Total: len(filtered),
		Query: query,
	}
	if category != filter.CategoryAll {
		resp.Category = string(category)
	}

	return resp, nil
}

// RefreshListing 强制刷新列表快照，供定时任务调用.
func (fs *FileService) RefreshListing(ctx context.Context) error {
	_, err := fs.listing.Refresh(ctx)
	return err
}

// listingRefreshTimeout 变更后后台刷新的最长等待时间.
const listingRefreshTimeout = 30 * time.Second

// refreshListingAsync 在上传/删除成功后后台全量刷新快照，
// 将乐观的 Upsert/Remove 与对象存储的真实状态对齐.
// 并发的刷新由 singleflight 合并，失败只记录日志.
func (fs *FileService) refreshListingAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), listingRefreshTimeout)
		defer cancel()

		if _, err := fs.listing.Refresh(ctx); err != nil {
			nlog.Logger().Warn().Err(err).Msg("refresh listing after mutation failed")
		}
	}()
}

// bucket 返回配置的对象桶名.
func (fs *FileService) bucket() string {
	return configs.GetConfig().S3.BucketName
}

// statObject 确认对象存在并返回基础信息，找不到返回 ErrFileNotFound.
func (fs *FileService) statObject(ctx context.Context, name string) (*types.FileObject, error) {
	info, err := fs.s3Client.StatObject(ctx, fs.bucket(), name, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return nil, ErrFileNotFound
		}

		return nil, err
	}

	return &types.FileObject{
		Name:         name,
		Size:         info.Size,
		ETag:         strings.Trim(info.ETag, "\""),
		ContentType:  info.ContentType,
		LastModified: info.LastModified.UTC(),
	}, nil
}

// resolveObject 先查列表快照，未命中时回源确认，避免快照陈旧引起误判.
func (fs *FileService) resolveObject(ctx context.Context, name string) (*types.FileObject, error) {
	if fs.listing.Contains(name) {
		if files, _, ok := fs.listing.Current(); ok {
			for i := range files {
				if files[i].Name == name {
					return &files[i], nil
				}
			}
		}
	}

	return fs.statObject(ctx, name)
}
