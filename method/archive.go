package method

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FinalizeSummary 收尾处理的结果统计
type FinalizeSummary struct {
	Consolidated    int // 생성된 전체통합报告数
	SourcesArchived int // 원본 보관 완료数
	ReportsArchived int // 리포트 보관 완료数
}

// FinalizeNotifier 收尾完成后的通知回调，由启动时注入
var FinalizeNotifier func(summary FinalizeSummary)

// listProcessingFiles 列出处理区中的xlsx文件，按是否为报告分为两组
func listProcessingFiles(ctx *RunContext) (sourceFiles, reportFiles []string) {
	entries, err := os.ReadDir(ctx.ProcessingDir)
	if err != nil {
		log.Printf("处理区目录读取失败: %v", err)
		return nil, nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".xlsx") || isLockFile(name) {
			continue
		}
		if strings.Contains(name, "통합_리포트") {
			reportFiles = append(reportFiles, name)
			continue
		}
		if strings.Contains(name, "마진정보") {
			continue
		}
		sourceFiles = append(sourceFiles, name)
	}
	return sourceFiles, reportFiles
}

// MoveSourceFilesToArchive 把处理区中的源文件移入원본_보관함
// 同名文件已存在时该文件报错跳过，绝不覆盖
func MoveSourceFilesToArchive(ctx *RunContext) int {
	log.Println("--- 3단계: 원본文件保管开始 ---")

	sourceFiles, _ := listProcessingFiles(ctx)
	if len(sourceFiles) == 0 {
		log.Println("没有需要保管的원본文件。")
		return 0
	}

	moved := 0
	for _, name := range sourceFiles {
		srcPath := filepath.Join(ctx.ProcessingDir, name)
		destPath := filepath.Join(ctx.SourceArchiveDir, name)
		if err := moveFile(srcPath, destPath); err != nil {
			log.Printf("-> 원본文件保管失败 %s: %v", name, err)
			continue
		}
		log.Printf("-> '%s' 保管完成。", name)
		moved++
	}

	log.Printf("--- 3단계: 원본文件保管完成 (%d/%d) ---", moved, len(sourceFiles))
	return moved
}

// archiveReportFile 把一个报告文件移入리포트보관함
// 同名文件已存在时：大小相同视为重复生成直接替换；大小不同则把旧文件
// 改名为带时间戳的백업文件后再移入，两个版本都保留
func archiveReportFile(srcPath, destPath string) error {
	destInfo, err := os.Stat(destPath)
	if err == nil {
		srcInfo, statErr := os.Stat(srcPath)
		if statErr != nil {
			return statErr
		}

		if srcInfo.Size() == destInfo.Size() {
			log.Printf("-> 同名同大小的报告已存在，替换: %s", filepath.Base(destPath))
			if err := os.Remove(destPath); err != nil {
				return err
			}
		} else {
			base := strings.TrimSuffix(destPath, ".xlsx")
			backupPath := base + "_backup_" + time.Now().Format("20060102_150405") + ".xlsx"
			log.Printf("-> 同名不同大小的报告已存在，旧文件改名为: %s", filepath.Base(backupPath))
			if err := os.Rename(destPath, backupPath); err != nil {
				return err
			}
		}
	}

	return moveFile(srcPath, destPath)
}

// MoveReportsToArchive 把处理区中的所有报告（个别与전체통합）移入리포트보관함
func MoveReportsToArchive(ctx *RunContext) int {
	log.Println("--- 4단계: 리포트保管开始 ---")

	_, reportFiles := listProcessingFiles(ctx)
	if len(reportFiles) == 0 {
		log.Println("没有需要保管的리포트。")
		return 0
	}

	moved := 0
	for _, name := range reportFiles {
		srcPath := filepath.Join(ctx.ProcessingDir, name)
		destPath := filepath.Join(ctx.ReportArchiveDir, name)
		if err := archiveReportFile(srcPath, destPath); err != nil {
			log.Printf("-> 리포트保管失败 %s: %v", name, err)
			continue
		}
		log.Printf("-> '%s' 保管完成。", name)
		moved++
	}

	log.Printf("--- 4단계: 리포트保管完成 (%d/%d) ---", moved, len(reportFiles))
	return moved
}

// FinalizeAllProcessing 会话收尾：전체통합 -> 원본保管 -> 리포트保管
// 每个阶段开始前检查停止信号，命中则中止剩余阶段
func FinalizeAllProcessing(ctx *RunContext) FinalizeSummary {
	var summary FinalizeSummary

	if ctx.StopRequested() {
		log.Println("检测到停止信号，跳过收尾处理。")
		return summary
	}

	sourceFiles, reportFiles := listProcessingFiles(ctx)
	if len(sourceFiles) == 0 && len(reportFiles) == 0 {
		log.Println("处理区为空，无需收尾。")
		return summary
	}

	if len(reportFiles) > 0 {
		summary.Consolidated = ConsolidateDailyReports(ctx)
	}

	if ctx.StopRequested() {
		log.Println("检测到停止信号，中止剩余收尾阶段。")
		return summary
	}
	summary.SourcesArchived = MoveSourceFilesToArchive(ctx)

	if ctx.StopRequested() {
		log.Println("检测到停止信号，中止剩余收尾阶段。")
		return summary
	}
	summary.ReportsArchived = MoveReportsToArchive(ctx)

	if FinalizeNotifier != nil {
		FinalizeNotifier(summary)
	}
	return summary
}
