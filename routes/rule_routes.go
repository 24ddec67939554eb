package routes

import (
	"github.com/gin-gonic/gin"

	"smartstore_report/controllers"
	"smartstore_report/method"
	"smartstore_report/middleware"
)

// InitRuleRoutes 初始化리워드/가구매规则相关路由
func InitRuleRoutes(router *gin.Engine, ctx *method.RunContext) {
	ruleController := &controllers.RuleController{Ctx: ctx}

	ruleGroup := router.Group("api/rules/")
	ruleGroup.Use(middleware.JWTAuthMiddleware())
	{
		ruleGroup.GET("rewards/", ruleController.GetRewards)
		ruleGroup.POST("rewards/add/", ruleController.AddReward)
		ruleGroup.GET("purchases/", ruleController.GetPurchases)
		ruleGroup.POST("purchases/add/", ruleController.AddPurchase)
	}
}
