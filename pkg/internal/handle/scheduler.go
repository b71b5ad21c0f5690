package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/middleware"
)

// SchedulerJobs 返回所有调度器任务信息.
//
//	@Summary	任务列表
//	@Tags		scheduler
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/scheduler/jobs [get]
func SchedulerJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": sched.GetJobInfos()})
}

// SchedulerJobByName 按名称查询单个任务信息.
//
//	@Summary	任务详情
//	@Tags		scheduler
//	@Produce	json
//	@Param		name	path		string	true	"任务名称"
//	@Success	200		{object}	scheduler.JobInfo
//	@Failure	404		{object}	map[string]string
//	@Router		/scheduler/jobs/{name} [get]
func SchedulerJobByName(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not available"})
		return
	}

	info, err := sched.GetJobInfoByName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// SchedulerRemoveJob 按名称移除任务.
//
//	@Summary	移除任务
//	@Tags		scheduler
//	@Produce	json
//	@Param		name	path		string	true	"任务名称"
//	@Success	200		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/scheduler/jobs/{name} [delete]
func SchedulerRemoveJob(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not available"})
		return
	}

	if err := sched.RemoveJobByName(c.Param("name")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "job removed"})
}
