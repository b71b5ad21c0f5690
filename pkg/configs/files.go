package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultListLimit 单次列举的最大对象数.
	DefaultListLimit = 100
	// DefaultCacheControlSeconds 上传对象的 Cache-Control max-age.
	DefaultCacheControlSeconds = 3600
	// DefaultPresignExpiryMinutes 预签名URL有效期（分钟）.
	DefaultPresignExpiryMinutes = 60
	// DefaultHistoryCapacity 最近浏览记录条数上限.
	DefaultHistoryCapacity = 5
	// DefaultRefreshSeconds 列表快照后台刷新周期（秒）.
	DefaultRefreshSeconds = 300
	// DefaultViewerBaseURL 在线文档查看器地址.
	DefaultViewerBaseURL = "https://docs.google.com/viewer"
)

// FilesConfig 文件管理相关配置.
type FilesConfig struct {
	ListLimit            int    `mapstructure:"list_limit"             rule:"min=1,max=1000"`
	CacheControlSeconds  int    `mapstructure:"cache_control_seconds"  rule:"min=0"`
	PresignExpiryMinutes int    `mapstructure:"presign_expiry_minutes" rule:"min=1,max=10080"`
	HistoryCapacity      int    `mapstructure:"history_capacity"       rule:"min=1,max=100"`
	RefreshSeconds       int    `mapstructure:"refresh_seconds"        rule:"min=10"`
	ViewerBaseURL        string `mapstructure:"viewer_base_url"        rule:"url"`
}

// GetPresignExpiry 返回预签名URL有效期作为time.Duration.
func (c *FilesConfig) GetPresignExpiry() time.Duration {
	return time.Duration(c.PresignExpiryMinutes) * time.Minute
}

// GetRefreshInterval 返回列表快照刷新周期作为time.Duration.
func (c *FilesConfig) GetRefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// setDefaults 设置文件管理配置的默认值.
func (c *FilesConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("files.list_limit", DefaultListLimit)
	v.SetDefault("files.cache_control_seconds", DefaultCacheControlSeconds)
	v.SetDefault("files.presign_expiry_minutes", DefaultPresignExpiryMinutes)
	v.SetDefault("files.history_capacity", DefaultHistoryCapacity)
	v.SetDefault("files.refresh_seconds", DefaultRefreshSeconds)
	v.SetDefault("files.viewer_base_url", DefaultViewerBaseURL)
}
