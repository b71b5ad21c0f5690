package service

import (
	"context"
	"fmt"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/types"
	nlog "github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/metrics"
)

// Delete 从对象桶删除文件，列表快照乐观移除，元数据软删除.
func (fs *FileService) Delete(ctx context.Context, user, fileName string) (*types.DeleteFileResponse, error) {
	obj, err := fs.resolveObject(ctx, fileName)
	if err != nil {
		return nil, err
	}

	if err := fs.s3Client.RemoveObject(ctx, fs.bucket(), fileName, minio.RemoveObjectOptions{}); err != nil {
		return &types.DeleteFileResponse{
			FileName: fileName,
			Success:  false,
			Error:    err.Error(),
		}, fmt.Errorf("remove object %s: %w", fileName, err)
	}

	// 乐观移除，下一次快照刷新会纠正任何偏差
	fs.listing.Remove(fileName)

	if dbErr := fs.dbClient.WithContext(ctx).
		Where("object_key = ?", fileName).
		Delete(&model.FileRecord{}).Error; dbErr != nil {
		nlog.Logger().Warn().Err(dbErr).Str("object", fileName).Msg("delete file record failed")
	}

	fs.publishObjectDeleted(fileName, obj.ETag, obj.Size, user)
	metrics.DeletesTotal.Inc()
	fs.refreshListingAsync()

	return &types.DeleteFileResponse{
		FileName: fileName,
		Success:  true,
	}, nil
}
