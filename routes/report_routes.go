package routes

import (
	"github.com/gin-gonic/gin"

	"smartstore_report/controllers"
	"smartstore_report/method"
	"smartstore_report/middleware"
)

// InitReportRoutes 初始化报告流水线相关路由
func InitReportRoutes(router *gin.Engine, ctx *method.RunContext) {
	reportController := &controllers.ReportController{Ctx: ctx}

	reportGroup := router.Group("api/report/")
	reportGroup.Use(middleware.JWTAuthMiddleware())
	{
		reportGroup.GET("status/", reportController.Status)
		reportGroup.POST("monitor/start/", reportController.StartMonitoring)
		reportGroup.POST("monitor/stop/", reportController.StopMonitoring)
		reportGroup.POST("batch/run/", reportController.RunBatch)
		reportGroup.GET("runs/", reportController.RunHistory)
	}
}
