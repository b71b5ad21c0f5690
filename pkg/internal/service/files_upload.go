package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"gorm.io/gorm/clause"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/types"
	nlog "github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/metrics"
)

// Upload 上传单个文件到对象桶，对象键即文件名.
// 同名对象直接覆盖，列表快照同步更新，元数据落库后发布写入事件.
func (fs *FileService) Upload(ctx context.Context, user, fileName string,
	reader io.Reader, size int64, contentType string,
) (*types.UploadFileResponse, error) {
	cfg := configs.GetConfig().Files
	bucket := fs.bucket()

	replaced := fs.listing.Contains(fileName)

	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: fmt.Sprintf("max-age=%d", cfg.CacheControlSeconds),
	}

	info, err := fs.s3Client.PutObject(ctx, bucket, fileName, reader, size, opts)
	if err != nil {
		return &types.UploadFileResponse{
			ObjectKey: fileName,
			Success:   false,
			Error:     err.Error(),
		}, fmt.Errorf("put object %s: %w", fileName, err)
	}

	now := time.Now().UTC()
	etag := strings.Trim(info.ETag, "\"")

	// 更新列表快照，覆盖同名条目
	fs.listing.Upsert(types.FileObject{
		Name:         fileName,
		Size:         info.Size,
		ETag:         etag,
		ContentType:  contentType,
		LastModified: now,
	})

	// 元数据落库，user+object_key 冲突时覆盖
	record := model.FileRecord{
		User:         user,
		ObjectKey:    fileName,
		Size:         info.Size,
		ETag:         etag,
		ContentType:  contentType,
		Bucket:       bucket,
		LastModified: now,
	}
	if dbErr := fs.dbClient.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user"}, {Name: "object_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"size", "etag", "content_type", "last_modified", "updated_at"}),
	}).Create(&record).Error; dbErr != nil {
		// 对象已写入，元数据同步失败只记录
		nlog.Logger().Warn().Err(dbErr).Str("object", fileName).Msg("sync file record failed")
	}

	fs.publishObjectStored(fileName, etag, info.Size, contentType, user, replaced)
	metrics.UploadsTotal.Inc()
	fs.refreshListingAsync()

	return &types.UploadFileResponse{
		ObjectKey:    fileName,
		Size:         info.Size,
		ETag:         etag,
		Bucket:       bucket,
		ContentType:  contentType,
		LastModified: now.Format(time.RFC3339),
		Success:      true,
	}, nil
}
