// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appcache "github.com/yeisme/ngdrive/pkg/cache"
	"github.com/yeisme/ngdrive/pkg/configs"
	"github.com/yeisme/ngdrive/pkg/internal/jobs"
	"github.com/yeisme/ngdrive/pkg/internal/storage"
	"github.com/yeisme/ngdrive/pkg/log"
	"github.com/yeisme/ngdrive/pkg/metrics"
	"github.com/yeisme/ngdrive/pkg/middleware"
	"github.com/yeisme/ngdrive/pkg/scheduler"
	"github.com/yeisme/ngdrive/pkg/tracing"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	sched  *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()
	if !config.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 初始化追踪
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// 注册定时任务
	sched, err := scheduler.New()
	if err != nil {
		fmt.Printf("Error creating scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.AuthMiddleware(config.Auth),
	)

	if config.RateLimit.Enabled {
		engine.Use(middleware.RateLimitMiddleware(config.RateLimit))
	}

	if config.CircuitBreaker.Enabled {
		engine.Use(middleware.CircuitBreakerMiddleware(config.CircuitBreaker))
	}

	// 文件列表读多写少，挂响应缓存；上传/删除后由 listing 快照保证最终一致
	engine.Use(listCacheMiddleware(manager))

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine: engine,
		config: config,
		sched:  sched,
	}
}

// listCacheMiddleware 仅缓存文件列表查询响应.
// 缓存键编入列表快照版本号，上传/删除对快照的乐观更新会立即让旧条目失效.
func listCacheMiddleware(manager *storage.Manager) gin.HandlerFunc {
	cfg := middleware.DefaultCacheConfig(appcache.NewCache(manager.GetKVClient()))
	cfg.Methods = []string{http.MethodGet}
	cfg.Skipper = func(c *gin.Context) bool {
		return c.FullPath() != "/api/v1/files"
	}
	cfg.KeyFunc = func(c *gin.Context) string {
		return fmt.Sprintf("%s:v%d", middleware.DefaultKey(c, nil), manager.GetListing().Version())
	}

	return middleware.CacheMiddleware(cfg)
}

func (a *App) Run() error {
	a.sched.Start()
	defer func() {
		_ = a.sched.Stop()
	}()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
