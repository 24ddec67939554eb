package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartstore_report/method"
	"smartstore_report/service/msg"
)

// RuleController 리워드/가구매规则控制器
// 规则以JSON文件为准，接口只做读取和追加
type RuleController struct {
	Ctx *method.RunContext
}

// GetRewards 返回当前所有리워드规则
func (rc *RuleController) GetRewards(c *gin.Context) {
	store := method.LoadRewardStore(rc.Ctx.RewardFile)
	if store.Rewards == nil {
		store.Rewards = []method.RewardRule{}
	}
	c.JSON(http.StatusOK, msg.SuccessResponse("查询成功", &map[string]any{
		"rewards": store.Rewards,
	}))
}

// AddReward 追加一条리워드规则
func (rc *RuleController) AddReward(c *gin.Context) {
	var requestData struct {
		StartDate string  `json:"start_date" binding:"required"`
		EndDate   string  `json:"end_date" binding:"required"`
		ProductID string  `json:"product_id" binding:"required"`
		Reward    float64 `json:"reward" binding:"required,gte=0"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("参数校验失败", err))
		return
	}

	store := method.LoadRewardStore(rc.Ctx.RewardFile)
	store.Rewards = append(store.Rewards, method.RewardRule{
		StartDate: requestData.StartDate,
		EndDate:   requestData.EndDate,
		ProductID: requestData.ProductID,
		Reward:    requestData.Reward,
	})

	if err := method.SaveRewardStore(rc.Ctx.RewardFile, store); err != nil {
		log.Printf("리워드规则保存失败: %v", err)
		c.JSON(http.StatusInternalServerError, msg.ErrResponseStr("规则保存失败"))
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("添加成功", &map[string]any{
		"count": len(store.Rewards),
	}))
}

// GetPurchases 返回当前所有가구매规则
func (rc *RuleController) GetPurchases(c *gin.Context) {
	store := method.LoadPurchaseStore(rc.Ctx.PurchaseFile)
	if store.Purchases == nil {
		store.Purchases = []method.PurchaseRule{}
	}
	c.JSON(http.StatusOK, msg.SuccessResponse("查询成功", &map[string]any{
		"purchases": store.Purchases,
	}))
}

// AddPurchase 追加一条가구매规则
func (rc *RuleController) AddPurchase(c *gin.Context) {
	var requestData struct {
		StartDate     string  `json:"start_date" binding:"required"`
		EndDate       string  `json:"end_date" binding:"required"`
		ProductID     string  `json:"product_id" binding:"required"`
		PurchaseCount float64 `json:"purchase_count" binding:"required,gte=0"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponse("参数校验失败", err))
		return
	}

	store := method.LoadPurchaseStore(rc.Ctx.PurchaseFile)
	store.Purchases = append(store.Purchases, method.PurchaseRule{
		StartDate:     requestData.StartDate,
		EndDate:       requestData.EndDate,
		ProductID:     requestData.ProductID,
		PurchaseCount: requestData.PurchaseCount,
	})

	if err := method.SavePurchaseStore(rc.Ctx.PurchaseFile, store); err != nil {
		log.Printf("가구매规则保存失败: %v", err)
		c.JSON(http.StatusInternalServerError, msg.ErrResponseStr("规则保存失败"))
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("添加成功", &map[string]any{
		"count": len(store.Purchases),
	}))
}
