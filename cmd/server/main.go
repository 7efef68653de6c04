package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/questify-backend/api"
	"github.com/SlpAus/questify-backend/internal/platform/config"
	"github.com/SlpAus/questify-backend/internal/platform/database"
	"github.com/SlpAus/questify-backend/internal/platform/health"
	"github.com/SlpAus/questify-backend/internal/platform/scheduler"
	"github.com/SlpAus/questify-backend/internal/platform/shutdown"
	"github.com/SlpAus/questify-backend/internal/platform/startup"
	"github.com/SlpAus/questify-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env缺失不是错误，生产环境直接用真实环境变量
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 迁移表结构并预热排行榜缓存
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 后台任务统一由生命周期管理器托管，停机时一起回收
	gracefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	if cfg.Jobs.EnableScheduler {
		decayHandle, err := gracefulMgr.NewServiceHandle("daily-streak-decay")
		if err != nil {
			panic(err)
		}
		go scheduler.StartDailyDecay(decayHandle)

		rolloverHandle, err := gracefulMgr.NewServiceHandle("monthly-rollover")
		if err != nil {
			panic(err)
		}
		go scheduler.StartMonthlyRollover(rolloverHandle)
	} else {
		fmt.Println("内置定时任务已关闭，结算与清扫需通过admin接口触发。")
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
