package routes

import (
	"github.com/gin-gonic/gin"

	"smartstore_report/controllers"
	"smartstore_report/middleware"
)

// InitUserRoutes 初始化运营用户相关路由
func InitUserRoutes(router *gin.Engine) {
	userController := &controllers.UserController{}

	router.POST("api/token/obtain/", userController.Login)
	router.POST("api/token/refresh/", userController.RefreshToken)

	// 添加用户需要已登录
	userGroup := router.Group("api/users/")
	userGroup.Use(middleware.JWTAuthMiddleware())
	{
		userGroup.POST("add/", userController.CreateUser)
	}
}
