package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"smartstore_report/config"
	"smartstore_report/db"
	"smartstore_report/method"
	"smartstore_report/middleware"
	"smartstore_report/other_method/message"
	"smartstore_report/routes"
)

func main() {
	// 加载配置
	appConfig := config.LoadConfig()

	// 初始化数据库（可选，连不上时文件处理流水线照常工作）
	db.InitDB(appConfig)
	// 运行数据库迁移，同步表结构变更
	db.RunMigrations()

	// 构建处理会话上下文
	ctx := method.NewRunContext(appConfig)
	if err := ctx.InitializeFolders(); err != nil {
		log.Fatalf("初始化工作目录失败: %v", err)
	}

	// 注入收尾完成通知
	method.FinalizeNotifier = func(summary method.FinalizeSummary) {
		message.SendFinalizeReport(appConfig, summary.Consolidated, summary.SourcesArchived, summary.ReportsArchived)
	}

	// 按配置自动启动监视会话
	if appConfig.AutoStartMonitor {
		log.Println("正在自动启动폴더监视会话...")
		go func() {
			if err := method.StartMonitoring(ctx); err != nil {
				log.Printf("监视会话异常结束: %v", err)
			}
		}()
	}

	// 创建Gin引擎
	router := gin.Default()

	// 设置中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestLogMiddleware())
	router.Use(middleware.ErrorHandlerMiddleware())

	// 初始化路由
	routes.InitRoutes(router, ctx)

	// 启动服务器
	log.Printf("Server starting on port %s\n", appConfig.ServerPort)
	if err := router.Run(":" + appConfig.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
