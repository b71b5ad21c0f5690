package service

import (
	"context"
	"fmt"
	"io"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/ngdrive/pkg/internal/types"
	"github.com/yeisme/ngdrive/pkg/metrics"
)

// AttachmentDisposition 构造附件下载的 Content-Disposition 头，文件名加引号转义.
func AttachmentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q", fileName)
}

// Download 打开对象的读取流，由服务端转发字节，调用方负责关闭 reader.
// 返回的元信息来自列表快照或 Stat，用于设置响应头.
func (fs *FileService) Download(ctx context.Context, user, fileName string) (io.ReadCloser, *types.FileObject, error) {
	entry, err := fs.resolveObject(ctx, fileName)
	if err != nil {
		return nil, nil, err
	}

	obj, err := fs.s3Client.GetObject(ctx, fs.bucket(), fileName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object %s: %w", fileName, err)
	}

	fs.publishObjectAccessed(fileName, user, "download", "")
	metrics.DownloadsTotal.Inc()

	return obj, entry, nil
}
