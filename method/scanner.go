package method

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProcessExistingFiles 启动扫描：遍历监视目录下各店铺子目录中已有的xlsx文件逐个处理
func ProcessExistingFiles(ctx *RunContext) {
	log.Println("=== 기존 파일 스캔 시작 ===")

	entries, err := os.ReadDir(ctx.WatchDir)
	if err != nil {
		log.Printf("监视目录读取失败: %v", err)
		return
	}

	scanned := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		storeName := entry.Name()
		if storeName == ProcessingDirName || storeName == SourceArchiveDirName || storeName == ReportArchiveDirName {
			continue
		}

		storeDir := filepath.Join(ctx.WatchDir, storeName)
		files, err := os.ReadDir(storeDir)
		if err != nil {
			log.Printf("店铺目录读取失败 %s: %v", storeName, err)
			continue
		}

		for _, file := range files {
			name := file.Name()
			if file.IsDir() || !strings.HasSuffix(name, ".xlsx") || isLockFile(name) {
				continue
			}
			ProcessFile(ctx, filepath.Join(storeDir, name))
			scanned++
		}
	}

	log.Printf("=== 기존 파일 스캔 완료: %d个文件 ===", scanned)
}

// ProcessIncompleteFiles 重新检查处理区中的未完成组
// 从文件名反推(店铺,日期)组，文件对齐全但还没有报告的组重新触发生成
// 崩溃或中途停止后重启时靠这里接着做完
func ProcessIncompleteFiles(ctx *RunContext) {
	log.Println("=== 미완료 파일 재검사 시작 ===")

	if ctx.StopRequested() {
		log.Println("检测到停止信号，跳过未完成组检查。")
		return
	}

	sourceFiles, _ := listProcessingFiles(ctx)
	if len(sourceFiles) == 0 {
		log.Println("处理区没有源文件。")
		return
	}

	// 从规范化文件名反推(店铺,日期)组
	groupSet := make(map[FileGroup]bool)
	for _, name := range sourceFiles {
		base := strings.TrimSuffix(name, ".xlsx")
		var store, date string
		if parts := strings.SplitN(base, " 스마트스토어_주문조회_", 2); len(parts) == 2 {
			store, date = parts[0], parts[1]
		} else if parts := strings.SplitN(base, " 상품성과_", 2); len(parts) == 2 {
			store, date = parts[0], parts[1]
		} else {
			continue
		}
		groupSet[FileGroup{Store: store, Date: date}] = true
	}

	groups := make([]FileGroup, 0, len(groupSet))
	for group := range groupSet {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Store != groups[j].Store {
			return groups[i].Store < groups[j].Store
		}
		return groups[i].Date < groups[j].Date
	})

	log.Printf("发现%d个待检查的(店铺,日期)组。", len(groups))
	for _, group := range groups {
		if ctx.StopRequested() {
			log.Println("检测到停止信号，中止未完成组检查。")
			return
		}
		CheckAndProcessData(ctx, group.Store, group.Date)
	}

	log.Println("=== 미완료 파일 재검사 완료 ===")
}
