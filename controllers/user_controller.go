package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"smartstore_report/config"
	"smartstore_report/db"
	"smartstore_report/models"
	"smartstore_report/service/msg"
	"smartstore_report/utils"
)

// UserController 运营用户控制器
type UserController struct{}

// Login 运营用户登录，校验通过后签发访问令牌和刷新令牌
func (uc *UserController) Login(c *gin.Context) {
	var requestData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("参数校验失败", err))
		return
	}

	if db.DB == nil {
		c.JSON(http.StatusServiceUnavailable, msg.ErrResponseStr("数据库未连接，登录功能不可用"))
		return
	}

	var user models.OperationUser
	if err := db.DB.Where("username = ?", requestData.Username).First(&user).Error; err != nil {
		log.Printf("登录失败，用户不存在: %s", requestData.Username)
		c.JSON(http.StatusUnauthorized, msg.ErrResponseStr("用户名或密码错误"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(requestData.Password)); err != nil {
		log.Printf("登录失败，密码错误: %s", requestData.Username)
		c.JSON(http.StatusUnauthorized, msg.ErrResponseStr("用户名或密码错误"))
		return
	}

	if user.Status != "active" {
		c.JSON(http.StatusForbidden, msg.ErrResponseStr("用户已被禁用"))
		return
	}

	cfg := config.LoadConfig()
	accessToken, refreshToken, err := utils.GenerateTokens(int(user.ID), cfg)
	if err != nil {
		log.Printf("生成令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, msg.ErrResponseStr("生成令牌失败"))
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("登录成功", &map[string]any{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"username":      user.Username,
		"user_type":     user.UserType,
	}))
}

// RefreshToken 用刷新令牌换取新的访问令牌
func (uc *UserController) RefreshToken(c *gin.Context) {
	var requestData struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("参数校验失败", err))
		return
	}

	cfg := config.LoadConfig()
	accessToken, err := utils.RefreshAccessToken(requestData.RefreshToken, cfg)
	if err != nil {
		c.JSON(http.StatusUnauthorized, msg.ErrResponseStr("刷新令牌无效或已过期"))
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("刷新成功", &map[string]any{
		"access_token": accessToken,
	}))
}

// CreateUser 添加运营用户，密码bcrypt哈希后入库
func (uc *UserController) CreateUser(c *gin.Context) {
	var requestData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		UserType string `json:"user_type"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("参数校验失败", err))
		return
	}

	if db.DB == nil {
		c.JSON(http.StatusServiceUnavailable, msg.ErrResponseStr("数据库未连接"))
		return
	}

	var count int64
	db.DB.Model(&models.OperationUser{}).Where("username = ?", requestData.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, msg.ErrResponseStr("用户名已存在"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(requestData.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("密码哈希失败: %v", err)
		c.JSON(http.StatusInternalServerError, msg.ErrResponseStr("密码处理失败"))
		return
	}

	userType := requestData.UserType
	if userType == "" {
		userType = "operator"
	}

	user := models.OperationUser{
		Username: requestData.Username,
		Password: string(hashedPassword),
		UserType: userType,
		Status:   "active",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("创建用户失败: %v", err)
		c.JSON(http.StatusInternalServerError, msg.ErrResponseStr("创建用户失败"))
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("创建成功", &map[string]any{
		"id":       user.ID,
		"username": user.Username,
	}))
}
