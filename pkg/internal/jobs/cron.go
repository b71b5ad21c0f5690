// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/ngdrive/pkg/configs"
	ctxPkg "github.com/yeisme/ngdrive/pkg/context"
	"github.com/yeisme/ngdrive/pkg/internal/model"
	"github.com/yeisme/ngdrive/pkg/internal/service"
	"github.com/yeisme/ngdrive/pkg/internal/storage"
	"github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 按 files.refresh_seconds 周期刷新对象列表快照
//   - 每天 02:10 对账文件元数据，清理已不存在对象的记录
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)
	cfg := configs.GetConfig().Files

	if err := sched.AddInterval(JobListingRefresh, cfg.GetRefreshInterval(), func() error {
		return runListingRefresh(baseCtx)
	}); err != nil {
		return err
	}

	if err := sched.AddCron(JobMetaReconcile, CronMetaReconcile, func() error {
		return runMetaReconcile(baseCtx)
	}); err != nil {
		return err
	}

	return nil
}

// runListingRefresh 全量刷新对象列表快照。
func runListingRefresh(ctx context.Context) error {
	svc := service.NewFileService(ctx)
	if err := svc.RefreshListing(ctx); err != nil {
		return fmt.Errorf("refresh listing: %w", err)
	}

	return nil
}

// runMetaReconcile 对账数据库元数据与对象存储快照：
// 快照中已不存在的对象，其记录做软删除，保留审计痕迹。
func runMetaReconcile(ctx context.Context) error {
	l := log.Logger().With().Str("job", JobMetaReconcile).Logger()

	lst := ctxPkg.GetListing(ctx)
	dbc := ctxPkg.GetDBClient(ctx)

	if lst == nil || dbc == nil {
		return fmt.Errorf("listing or database client not available")
	}

	files, err := lst.Get(ctx)
	if err != nil {
		return fmt.Errorf("load listing snapshot: %w", err)
	}

	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		present[f.Name] = struct{}{}
	}

	var records []model.FileRecord
	if err := dbc.DB.WithContext(ctx).Find(&records).Error; err != nil {
		return fmt.Errorf("load file records: %w", err)
	}

	var stale int

	for _, rec := range records {
		if _, ok := present[rec.ObjectKey]; ok {
			continue
		}

		if err := dbc.DB.WithContext(ctx).Delete(&model.FileRecord{}, rec.ID).Error; err != nil {
			l.Warn().Err(err).Str("object", rec.ObjectKey).Msg("soft delete stale record failed")
			continue
		}

		stale++
	}

	if stale > 0 {
		l.Info().Int("stale", stale).Int("present", len(present)).Msg("reconciled file records")
	}

	return nil
}
