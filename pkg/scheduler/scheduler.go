// Package scheduler 基于 gocron 封装定时任务调度, 提供任务注册、状态跟踪与生命周期管理.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	nlog "github.com/yeisme/ngdrive/pkg/log"
)

// JobStatus 任务状态.
type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

// JobInfo 任务运行信息.
type JobInfo struct {
	Name      string    `json:"name"`
	Schedule  string    `json:"schedule"`
	Status    JobStatus `json:"status"`
	LastRun   time.Time `json:"last_run,omitzero"`
	NextRun   time.Time `json:"next_run,omitzero"`
	RunCount  int64     `json:"run_count"`
	FailCount int64     `json:"fail_count"`
	LastError string    `json:"last_error,omitempty"`
}

// Scheduler 调度器, 持有 gocron 实例与任务注册表.
type Scheduler struct {
	sched gocron.Scheduler

	mu       sync.RWMutex
	jobIDs   map[string]uuid.UUID // name -> gocron job id
	jobInfos map[string]*JobInfo  // name -> info
}

// New 创建调度器.
func New(opts ...gocron.SchedulerOption) (*Scheduler, error) {
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{
		sched:    s,
		jobIDs:   make(map[string]uuid.UUID),
		jobInfos: make(map[string]*JobInfo),
	}, nil
}

// AddCron 注册 cron 表达式任务, name 必须唯一.
func (s *Scheduler) AddCron(name, crontab string, task func() error) error {
	return s.add(name, crontab, gocron.CronJob(crontab, false), task)
}

// AddInterval 注册固定间隔任务, name 必须唯一.
func (s *Scheduler) AddInterval(name string, interval time.Duration, task func() error) error {
	return s.add(name, fmt.Sprintf("@every %s", interval), gocron.DurationJob(interval), task)
}

func (s *Scheduler) add(name, schedule string, def gocron.JobDefinition, task func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobIDs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	info := &JobInfo{Name: name, Schedule: schedule, Status: JobStatusPending}

	job, err := s.sched.NewJob(
		def,
		gocron.NewTask(s.wrap(name, task)),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %q: %w", name, err)
	}

	s.jobIDs[name] = job.ID()
	s.jobInfos[name] = info

	return nil
}

// wrap 包装任务函数, 负责状态与计数更新.
func (s *Scheduler) wrap(name string, task func() error) func() {
	return func() {
		s.updateJobStatus(name, func(info *JobInfo) {
			info.Status = JobStatusRunning
			info.LastRun = time.Now()
			info.RunCount++
		})

		err := task()

		s.updateJobStatus(name, func(info *JobInfo) {
			if err != nil {
				info.Status = JobStatusFailed
				info.FailCount++
				info.LastError = err.Error()
			} else {
				info.Status = JobStatusSuccess
				info.LastError = ""
			}
		})

		if err != nil {
			nlog.Logger().Error().Err(err).Str("job", name).Msg("scheduled job failed")
		} else {
			nlog.Logger().Debug().Str("job", name).Msg("scheduled job completed")
		}
	}
}

// updateJobStatus 在锁内更新任务信息.
func (s *Scheduler) updateJobStatus(name string, fn func(*JobInfo)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.jobInfos[name]; ok {
		fn(info)
	}
}

// RemoveJobByName 按名称移除任务.
func (s *Scheduler) RemoveJobByName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobIDs[name]
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}

	if err := s.sched.RemoveJob(id); err != nil {
		return fmt.Errorf("remove job %q: %w", name, err)
	}

	delete(s.jobIDs, name)
	delete(s.jobInfos, name)

	return nil
}

// GetJobInfoByName 查询单个任务信息, 附带下一次运行时间.
func (s *Scheduler) GetJobInfoByName(name string) (*JobInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.jobInfos[name]
	if !ok {
		return nil, fmt.Errorf("job %q not found", name)
	}

	cp := *info
	if id, ok := s.jobIDs[name]; ok {
		if next, err := s.nextRun(id); err == nil {
			cp.NextRun = next
		}
	}

	return &cp, nil
}

// GetJobInfos 返回所有任务信息的快照.
func (s *Scheduler) GetJobInfos() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.jobInfos))

	for name, info := range s.jobInfos {
		cp := *info
		if id, ok := s.jobIDs[name]; ok {
			if next, err := s.nextRun(id); err == nil {
				cp.NextRun = next
			}
		}

		infos = append(infos, cp)
	}

	return infos
}

// nextRun 查询 gocron 任务的下一次运行时间.
func (s *Scheduler) nextRun(id uuid.UUID) (time.Time, error) {
	for _, job := range s.sched.Jobs() {
		if job.ID() == id {
			return job.NextRun()
		}
	}

	return time.Time{}, fmt.Errorf("job %s not found in scheduler", id)
}

// Start 启动调度器 (非阻塞).
func (s *Scheduler) Start() {
	s.sched.Start()
	nlog.Logger().Info().Int("jobs", len(s.jobIDs)).Msg("scheduler started")
}

// Stop 停止调度器, 等待运行中的任务结束.
func (s *Scheduler) Stop() error {
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}

	nlog.Logger().Info().Msg("scheduler stopped")

	return nil
}
