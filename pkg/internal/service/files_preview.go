package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/filter"
	"github.com/yeisme/ngdrive/pkg/internal/types"
	nlog "github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/metrics"
)

// inlineExts 浏览器可直接渲染的扩展名.
var inlineExts = map[string]bool{
	"pdf": true, "jpg": true, "jpeg": true, "png": true,
	"gif": true, "txt": true, "html": true,
}

// viewerExts 需要外部文档查看器包装的 Office 扩展名.
var viewerExts = map[string]bool{
	"doc": true, "docx": true, "ppt": true, "pptx": true,
	"xls": true, "xlsx": true,
}

// PlanPreviewMode 根据扩展名决定预览模式，不能在线预览的回退为下载.
func PlanPreviewMode(fileName string) types.PreviewMode {
	ext := filter.Ext(fileName)

	switch {
	case inlineExts[ext]:
		return types.PreviewModeInline
	case viewerExts[ext]:
		return types.PreviewModeViewer
	default:
		return types.PreviewModeDownload
	}
}

// ViewerURL 将原始直链包装为外部文档查看器地址.
func ViewerURL(base, rawURL string) string {
	return fmt.Sprintf("%s?url=%s&embedded=true", base, url.QueryEscape(rawURL))
}

// Preview 生成文件预览链接并同步写入浏览记录.
// 记录仅在成功产出可用链接后写入，失败的预览不会污染记录.
func (fs *FileService) Preview(ctx context.Context, user, fileName string) (*types.PreviewFileResponse, error) {
	cfg := configs.GetConfig().Files

	if _, err := fs.resolveObject(ctx, fileName); err != nil {
		return nil, err
	}

	mode := PlanPreviewMode(fileName)
	expiry := cfg.GetPresignExpiry()

	reqParams := make(url.Values)
	if mode == types.PreviewModeDownload {
		reqParams.Set("response-content-disposition", AttachmentDisposition(fileName))
	} else {
		reqParams.Set("response-content-disposition", "inline")
	}

	presigned, err := fs.s3Client.PresignedGetObject(ctx, fs.bucket(), fileName, expiry, reqParams)
	if err != nil {
		return nil, fmt.Errorf("presign get for %s: %w", fileName, err)
	}

	previewURL := presigned.String()
	if mode == types.PreviewModeViewer {
		previewURL = ViewerURL(cfg.ViewerBaseURL, previewURL)
	}

	// 链接已产出，同步落浏览记录
	if user != "" {
		if recErr := fs.tracker.Record(ctx, user, fileName, time.Now().UTC()); recErr != nil {
			nlog.Logger().Warn().Err(recErr).Str("file", fileName).Msg("record history failed")
		}
	}

	fs.publishObjectAccessed(fileName, user, "preview", string(mode))
	metrics.PreviewsTotal.WithLabelValues(string(mode)).Inc()

	return &types.PreviewFileResponse{
		FileName:  fileName,
		URL:       previewURL,
		Mode:      mode,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}
