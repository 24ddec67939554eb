package routes

import (
	"github.com/gin-gonic/gin"

	"smartstore_report/method"
)

// InitRoutes 初始化路由配置
func InitRoutes(router *gin.Engine, ctx *method.RunContext) {
	// 运营用户相关路由
	InitUserRoutes(router)

	// 报告流水线相关路由
	InitReportRoutes(router, ctx)

	// 리워드/가구매规则相关路由
	InitRuleRoutes(router, ctx)

	// 健康检查路由
	router.GET("api/health/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 404 路由
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "页面不存在"})
	})

	// 405 路由
	router.NoMethod(func(c *gin.Context) {
		c.JSON(405, gin.H{"error": "请求方法不允许"})
	})
}
