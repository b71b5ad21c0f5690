package model

import (
	"time"

	"gorm.io/gorm"
)

// FileRecord 文件元数据模型，对象存储为真源，本表用于审计与统计.
type FileRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// 上传者标识，和对象键一起唯一
	User string `gorm:"size:255;index:idx_user_key,unique;index" json:"user"`
	// 对象键（S3 key），确保在 user 下唯一
	ObjectKey   string `gorm:"size:1024;index:idx_user_key,unique;index" json:"object_key"`
	Size        int64  `gorm:"index"                                     json:"size"`
	ETag        string `gorm:"size:64"                                   json:"etag"`
	ContentType string `gorm:"size:255;index"                            json:"content_type"`
	Bucket      string `gorm:"size:255"                                  json:"bucket"`
	// AccessCount 预览与下载累计次数
	AccessCount int64 `gorm:"default:0" json:"access_count"`
	// 来自对象存储的最后修改时间
	LastModified time.Time `gorm:"index" json:"last_modified"`
	// 软删除与审计
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
