package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishObjectStored 发布 drive.object.stored 事件。
// 对象写入对象存储且列表缓存更新后调用，通知下游消费者（审计、统计等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishObjectStored(pub message.Publisher, payload ObjectStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicObjectStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicObjectStored, msg)
}

// PublishObjectDeleted 发布 drive.object.deleted 事件。
func PublishObjectDeleted(pub message.Publisher, payload ObjectDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicObjectDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicObjectDeleted, msg)
}

// PublishObjectAccessed 发布 drive.object.accessed 事件。
func PublishObjectAccessed(pub message.Publisher, payload ObjectAccessedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicObjectAccessed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicObjectAccessed, msg)
}

// ParseObjectStored 将 Watermill 消息解析为强类型 Envelope（ObjectStoredPayload）。
func ParseObjectStored(msg *message.Message) (Message[ObjectStoredPayload], error) {
	return ParseWatermillMessage[ObjectStoredPayload](msg)
}

// ParseObjectDeleted 将 Watermill 消息解析为强类型 Envelope（ObjectDeletedPayload）。
func ParseObjectDeleted(msg *message.Message) (Message[ObjectDeletedPayload], error) {
	return ParseWatermillMessage[ObjectDeletedPayload](msg)
}

// ParseObjectAccessed 将 Watermill 消息解析为强类型 Envelope（ObjectAccessedPayload）。
func ParseObjectAccessed(msg *message.Message) (Message[ObjectAccessedPayload], error) {
	return ParseWatermillMessage[ObjectAccessedPayload](msg)
}
