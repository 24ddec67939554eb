package method

import (
	"fmt"
	"os"
	"path/filepath"

	"smartstore_report/config"
)

// 目录与文件的固定名称
const (
	ProcessingDirName    = "작업폴더"
	SourceArchiveDirName = "원본_보관함"
	ReportArchiveDirName = "리포트보관함"
	MarginFileName       = "마진정보.xlsx"
	RewardFileName       = "리워드설정.json"
	PurchaseFileName     = "가구매설정.json"
	StopFlagFileName     = "stop.flag"
)

// RunContext 一次处理会话的不可变上下文
// 所有路径在会话开始时确定一次，各组件只读使用，不再依赖进程级可变配置
type RunContext struct {
	WatchDir          string // 监视的下载目录，店铺子目录在其下
	ProcessingDir     string // 작업폴더：扁平的处理区
	SourceArchiveDir  string // 원본_보관함
	ReportArchiveDir  string // 리포트보관함
	MarginFile        string // 마진정보.xlsx
	RewardFile        string // 리워드설정.json
	PurchaseFile      string // 가구매설정.json
	StopFlagFile      string // 停止哨兵文件
	OrderFilePassword string // 주문조회文件密码

	// 单次会话内已确认"完成"的(店铺,日期)键，避免重复stat报告文件
	// 持久状态仍然以文件系统为准，该集合只是会话内优化
	processedKeys map[string]bool
}

// NewRunContext 根据应用配置构建会话上下文
func NewRunContext(cfg config.Config) *RunContext {
	return &RunContext{
		WatchDir:          cfg.WatchDir,
		ProcessingDir:     filepath.Join(cfg.WatchDir, ProcessingDirName),
		SourceArchiveDir:  filepath.Join(cfg.WatchDir, SourceArchiveDirName),
		ReportArchiveDir:  filepath.Join(cfg.WatchDir, ReportArchiveDirName),
		MarginFile:        filepath.Join(cfg.BaseDir, MarginFileName),
		RewardFile:        filepath.Join(cfg.BaseDir, RewardFileName),
		PurchaseFile:      filepath.Join(cfg.BaseDir, PurchaseFileName),
		StopFlagFile:      filepath.Join(cfg.BaseDir, StopFlagFileName),
		OrderFilePassword: cfg.OrderFilePassword,
		processedKeys:     make(map[string]bool),
	}
}

// InitializeFolders 确保处理区和两个保管目录存在
func (ctx *RunContext) InitializeFolders() error {
	for _, dir := range []string{ctx.ProcessingDir, ctx.SourceArchiveDir, ctx.ReportArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建目录失败 %s: %v", dir, err)
		}
	}
	return nil
}

// StopRequested 检查停止哨兵文件是否存在
func (ctx *RunContext) StopRequested() bool {
	_, err := os.Stat(ctx.StopFlagFile)
	return err == nil
}

// RequestStop 写入停止哨兵文件
func (ctx *RunContext) RequestStop() error {
	return os.WriteFile(ctx.StopFlagFile, []byte("stop"), 0644)
}

// ClearStopFlag 删除停止哨兵文件，会话开始和结束时调用
func (ctx *RunContext) ClearStopFlag() {
	if err := os.Remove(ctx.StopFlagFile); err != nil && !os.IsNotExist(err) {
		fmt.Printf("删除停止哨兵文件失败: %v\n", err)
	}
}

// markProcessed 记录会话内已完成的键
func (ctx *RunContext) markProcessed(store, date string) {
	ctx.processedKeys[store+"|"+date] = true
}

// isProcessed 判断会话内是否已确认该键完成
func (ctx *RunContext) isProcessed(store, date string) bool {
	return ctx.processedKeys[store+"|"+date]
}
