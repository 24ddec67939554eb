package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartstore_report/db"
	"smartstore_report/method"
	"smartstore_report/models"
	"smartstore_report/service/msg"
	"smartstore_report/utils"
)

// ReportController 报告流水线控制器
type ReportController struct {
	Ctx *method.RunContext
}

// Status 返回当前会话状态和各目录路径
func (rc *ReportController) Status(c *gin.Context) {
	running, kind := method.SessionRunning()

	c.JSON(http.StatusOK, msg.SuccessResponse("查询成功", &map[string]any{
		"running":            running,
		"session_kind":       kind,
		"watch_dir":          rc.Ctx.WatchDir,
		"processing_dir":     rc.Ctx.ProcessingDir,
		"source_archive_dir": rc.Ctx.SourceArchiveDir,
		"report_archive_dir": rc.Ctx.ReportArchiveDir,
	}))
}

// StartMonitoring 启动监视会话
func (rc *ReportController) StartMonitoring(c *gin.Context) {
	if running, kind := method.SessionRunning(); running {
		c.JSON(http.StatusConflict, msg.ErrResponseStr("已有"+kind+"会话正在运行"))
		return
	}

	go func() {
		if err := method.StartMonitoring(rc.Ctx); err != nil {
			log.Printf("监视会话异常结束: %v", err)
		}
	}()

	c.JSON(http.StatusOK, msg.SuccessResponseStr("监视会话已启动"))
}

// StopMonitoring 请求停止监视会话
func (rc *ReportController) StopMonitoring(c *gin.Context) {
	if err := method.StopMonitoring(rc.Ctx); err != nil {
		c.JSON(http.StatusBadRequest, msg.ErrResponseStr(err.Error()))
		return
	}
	c.JSON(http.StatusOK, msg.SuccessResponseStr("停止请求已发出，会话将在收尾完成后结束"))
}

// RunBatch 手动执行一次完整的批处理
func (rc *ReportController) RunBatch(c *gin.Context) {
	if running, kind := method.SessionRunning(); running {
		c.JSON(http.StatusConflict, msg.ErrResponseStr("已有"+kind+"会话正在运行"))
		return
	}

	go func() {
		if err := method.RunBatch(rc.Ctx); err != nil {
			log.Printf("批处理异常结束: %v", err)
		}
	}()

	c.JSON(http.StatusOK, msg.SuccessResponseStr("批处理已启动"))
}

// RunHistory 分页查询报告生成记录
func (rc *ReportController) RunHistory(c *gin.Context) {
	if db.DB == nil {
		c.JSON(http.StatusServiceUnavailable, msg.ErrResponseStr("数据库未连接，运行记录不可用"))
		return
	}

	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	offset, limit := utils.Pagination(pageNum, pageSize)

	var total int64
	db.DB.Model(&models.ReportRun{}).Count(&total)

	var runs []models.ReportRun
	if err := db.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&runs).Error; err != nil {
		log.Printf("查询运行记录失败: %v", err)
		c.JSON(http.StatusInternalServerError, msg.ErrResponseStr("查询运行记录失败"))
		return
	}

	c.JSON(http.StatusOK, msg.SuccessResponse("查询成功", &map[string]any{
		"total": total,
		"runs":  runs,
	}))
}
