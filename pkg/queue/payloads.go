package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 对象存储领域 --------------------------

// ObjectRef 标识对象存储中的对象与基础元数据.
type ObjectRef struct {
	Bucket      string `json:"bucket"`
	ObjectKey   string `json:"object_key"`
	ETag        string `json:"etag,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// ObjectStoredPayload 已写入对象存储（含基础元数据）.
type ObjectStoredPayload struct {
	Object ObjectRef `json:"object"`
	// Actor 触发上传的用户标识.
	Actor string `json:"actor,omitempty"`
	// Replaced 表示本次写入覆盖了同名对象.
	Replaced bool `json:"replaced,omitempty"`
}

// ObjectDeletedPayload 对象被删除.
type ObjectDeletedPayload struct {
	Object ObjectRef `json:"object"`
	Actor  string    `json:"actor,omitempty"`
}

// AccessKind 对象被访问的方式.
type AccessKind string

const (
	AccessPreview  AccessKind = "preview"
	AccessDownload AccessKind = "download"
)

// ObjectAccessedPayload 对象被预览或下载.
type ObjectAccessedPayload struct {
	Object ObjectRef  `json:"object"`
	Actor  string     `json:"actor,omitempty"`
	Kind   AccessKind `json:"kind"`
	// Mode 预览模式（inline/viewer/download），下载事件为空.
	Mode string `json:"mode,omitempty"`
}

// -------------------------- 浏览记录领域 --------------------------

// HistoryRecordedPayload 浏览记录已写入持久层.
type HistoryRecordedPayload struct {
	User     string    `json:"user"`
	FileName string    `json:"file_name"`
	ViewedAt time.Time `json:"viewed_at"`
}

// -------------------------- 会话领域 --------------------------

// AuthSessionPayload 登录/退出事件.
type AuthSessionPayload struct {
	User string `json:"user"`
	// TokenID 令牌指纹，退出事件用于黑名单对账.
	TokenID string `json:"token_id,omitempty"`
}
