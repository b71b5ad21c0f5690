package types

import "time"

// FileObject 列表中的单个对象.
type FileObject struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// ListFilesResponse 文件列表响应.
type ListFilesResponse struct {
	Files    []FileObject `json:"files"`
	Total    int          `json:"total"`
	Category string       `json:"category,omitempty"`
	Query    string       `json:"query,omitempty"`
}

// UploadFileResponse 单个文件上传响应.
type UploadFileResponse struct {
	ObjectKey    string `json:"object_key"`
	Size         int64  `json:"size"`
	ETag         string `json:"etag,omitempty"`
	Bucket       string `json:"bucket,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// PreviewMode 预览模式.
type PreviewMode string

const (
	// PreviewModeInline 浏览器原生可渲染，直接打开.
	PreviewModeInline PreviewMode = "inline"
	// PreviewModeViewer 通过外部文档查看器包装打开.
	PreviewModeViewer PreviewMode = "viewer"
	// PreviewModeDownload 无法在线预览，回退为下载.
	PreviewModeDownload PreviewMode = "download"
)

// PreviewFileResponse 文件预览响应.
type PreviewFileResponse struct {
	FileName  string      `json:"file_name"`
	URL       string      `json:"url"`
	Mode      PreviewMode `json:"mode"`
	ExpiresIn int         `json:"expires_in,omitempty"` // 预签名URL有效期（秒）
}

// DeleteFileResponse 文件删除响应.
type DeleteFileResponse struct {
	FileName string `json:"file_name"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
