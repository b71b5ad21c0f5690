package types

// HistoryResponse 最近浏览记录响应.
// 条目按浏览时间从新到旧排列.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
}

// HistoryEntry 单条浏览记录.
// 字段名保持与持久化格式一致（camelCase）.
type HistoryEntry struct {
	FileName string `json:"fileName"`
	ViewedAt string `json:"viewedAt"` // RFC3339
}
