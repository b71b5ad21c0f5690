// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：drive.<域>.<动作>，尽量稳定且向后兼容.
// 域：object(对象存储)、history(浏览记录)、auth(会话)
// 动作：stored/deleted/accessed 等完成态动词

const (
	// 对象存储领域.
	TopicObjectStored   = "drive.object.stored"   // 已写入对象存储（包含 ETag、基础元数据）
	TopicObjectDeleted  = "drive.object.deleted"  // 对象从存储中删除
	TopicObjectAccessed = "drive.object.accessed" // 对象被预览或下载（用于热点数据统计）

	// 浏览记录领域.
	TopicHistoryRecorded = "drive.history.recorded" // 浏览记录已持久化

	// 会话领域.
	TopicAuthLogin  = "drive.auth.login"  // 用户登录成功
	TopicAuthLogout = "drive.auth.logout" // 用户退出，令牌进入黑名单
)

// 主题分组，用于批量操作或权限控制.
var (
	// 对象存储相关主题集合.
	ObjectTopics = []string{
		TopicObjectStored, TopicObjectDeleted, TopicObjectAccessed,
	}

	// 浏览记录相关主题集合.
	HistoryTopics = []string{
		TopicHistoryRecorded,
	}

	// 会话相关主题集合.
	AuthTopics = []string{
		TopicAuthLogin, TopicAuthLogout,
	}
)
