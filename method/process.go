package method

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// moveFile 移动文件，目标已存在时报错，不覆盖
// os.Rename跨设备失败时退化为复制后删除
func moveFile(srcPath, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("目标文件已存在: %s", destPath)
	}

	if err := os.Rename(srcPath, destPath); err == nil {
		return nil
	}

	// 跨设备移动：复制后删除原文件
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %v", err)
	}
	defer src.Close()

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %v", err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(destPath)
		return fmt.Errorf("复制文件内容失败: %v", err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("关闭目标文件失败: %v", err)
	}

	src.Close()
	if err := os.Remove(srcPath); err != nil {
		return fmt.Errorf("删除源文件失败: %v", err)
	}
	return nil
}

// ProcessFile 把监测到的文件移入处理区，然后检查配对并触发报告生成
func ProcessFile(ctx *RunContext, srcPath string) {
	log.Printf("[ProcessFile] 开始处理文件: %s", srcPath)
	info := GetFileInfo(ctx, srcPath)
	if info == nil {
		log.Printf("[ProcessFile] 文件信息不符合要求，忽略: %s", srcPath)
		return
	}

	destPath := filepath.Join(ctx.ProcessingDir, info.NewFilename)
	log.Printf("[ProcessFile] 文件移动: '%s' -> '%s'", srcPath, destPath)
	if err := moveFile(srcPath, destPath); err != nil {
		log.Printf("[ProcessFile] 文件移动失败: %v", err)
		return
	}
	log.Println("[ProcessFile] 文件移动完成。")

	CheckAndProcessData(ctx, info.Store, info.Date)
}

// CheckAndProcessData 检查(店铺,日期)的文件对是否齐全，齐全且还没有报告时触发生成
func CheckAndProcessData(ctx *RunContext, store, date string) {
	log.Printf("[%s, %s] 开始检查文件对并处理数据...", store, date)

	if ctx.isProcessed(store, date) {
		log.Printf("[%s, %s] 本次会话中已确认报告存在，跳过。", store, date)
		return
	}

	perfPath := filepath.Join(ctx.ProcessingDir, PerfFilename(store, date))
	orderPath := filepath.Join(ctx.ProcessingDir, OrderFilename(store, date))

	if !fileExists(perfPath) || !fileExists(orderPath) {
		log.Printf("[%s, %s] 文件对还没有准备齐全。", store, date)
		return
	}

	log.Printf("[%s, %s] 发现完整文件对！开始数据处理。", store, date)

	reportPath := filepath.Join(ctx.ProcessingDir, IndividualReportFilename(store, date))
	if fileExists(reportPath) {
		log.Printf("[%s, %s] 报告已经生成过了。", store, date)
		ctx.markProcessed(store, date)
		return
	}

	processedGroups := GenerateIndividualReports(ctx)
	if len(processedGroups) == 0 {
		log.Printf("[%s, %s] 报告生成失败。", store, date)
		return
	}

	for _, group := range processedGroups {
		ctx.markProcessed(group.Store, group.Date)
	}
	log.Printf("[%s, %s] 个别报告处理完成。", store, date)
}

// fileExists 判断文件是否存在
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
