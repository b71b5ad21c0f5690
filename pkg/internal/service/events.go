package service

import (
	"context"
	"time"

	"github.com/yeisme/ngdrive/pkg/configs"
	nlog "github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/queue"
)

// publishTimeout 事件发布的最大等待时间，避免阻塞请求路径.
const publishTimeout = 3 * time.Second

// publish 构造信封并发布到 MQ，失败只记录日志.
func publish[T any](fs *FileService, topic string, payload T) {
	msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer("ngdrive"))
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("build event failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := fs.mqClient.Publish(ctx, topic, msg); err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

func (fs *FileService) objectRef(fileName, etag string, size int64, contentType string) queue.ObjectRef {
	return queue.ObjectRef{
		Bucket:      fs.bucket(),
		ObjectKey:   fileName,
		ETag:        etag,
		Size:        size,
		ContentType: contentType,
	}
}

func (fs *FileService) publishObjectStored(fileName, etag string, size int64, contentType, actor string, replaced bool) {
	ev := configs.GetConfig().Events
	if !ev.Enabled || !ev.Object.Stored {
		return
	}

	publish(fs, queue.TopicObjectStored, queue.ObjectStoredPayload{
		Object:   fs.objectRef(fileName, etag, size, contentType),
		Actor:    actor,
		Replaced: replaced,
	})
}

func (fs *FileService) publishObjectDeleted(fileName, etag string, size int64, actor string) {
	ev := configs.GetConfig().Events
	if !ev.Enabled || !ev.Object.Deleted {
		return
	}

	publish(fs, queue.TopicObjectDeleted, queue.ObjectDeletedPayload{
		Object: fs.objectRef(fileName, etag, size, ""),
		Actor:  actor,
	})
}

func (fs *FileService) publishObjectAccessed(fileName, actor, kind, mode string) {
	ev := configs.GetConfig().Events
	if !ev.Enabled || !ev.Object.Accessed {
		return
	}

	publish(fs, queue.TopicObjectAccessed, queue.ObjectAccessedPayload{
		Object: fs.objectRef(fileName, "", 0, ""),
		Actor:  actor,
		Kind:   queue.AccessKind(kind),
		Mode:   mode,
	})
}
