package jobs

// 任务名称常量, 供注册与查询使用.
const (
	JobListingRefresh = "listing.refresh"
	JobMetaReconcile  = "meta.reconcile"
)

// cron 表达式常量.
const (
	// CronMetaReconcile 每天 02:10 对账一次元数据.
	CronMetaReconcile = "10 2 * * *"
)
