package method

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// 文件类型
const (
	FileTypeOrder       = "주문" // 스마트스토어_주문조회
	FileTypePerformance = "성과" // 상품성과
)

// 文件大小上限 100MB
const maxExcelFileSize = 100 * 1024 * 1024

// 两种导出文件的文件名模式，互斥
var (
	orderFilePattern = regexp.MustCompile(`^스마트스토어_주문조회_(\d{4}-\d{2}-\d{2})\.xlsx$`)
	perfFilePattern  = regexp.MustCompile(`^상품성과_(\d{4}-\d{2}-\d{2}).*\.xlsx$`)
)

// SourceFile 分类后的源文件信息，分类完成后不再变更
type SourceFile struct {
	Path        string // 原始绝对路径
	Store       string // 店铺名，取自父目录名
	Date        string // 业务日期 YYYY-MM-DD，取自文件名
	FileType    string // 주문 或 성과
	NewFilename string // 处理区内的规范化文件名 "<store> <prefix>_<date>.xlsx"
}

// ValidateExcelFile 校验Excel文件：扩展名、存在性、大小上限
func ValidateExcelFile(path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return fmt.Errorf("不支持的文件格式: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("找不到文件: %s", path)
	}

	if info.Size() > maxExcelFileSize {
		return fmt.Errorf("文件过大（超过100MB）: %s", path)
	}

	return nil
}

// GetFileInfo 分析文件路径，返回店铺、日期、文件类型和规范化文件名
// 不符合条件的文件返回nil（忽略，不报错）
func GetFileInfo(ctx *RunContext, srcPath string) *SourceFile {
	if err := ValidateExcelFile(srcPath); err != nil {
		log.Printf("[GetFileInfo] 文件校验失败: %v", err)
		return nil
	}

	// 直接位于监视根目录下的文件不归属任何店铺，忽略
	parentDir := filepath.Dir(srcPath)
	if filepath.Clean(parentDir) == filepath.Clean(ctx.WatchDir) {
		return nil
	}
	storeName := filepath.Base(parentDir)

	originalFilename := filepath.Base(srcPath)

	if m := orderFilePattern.FindStringSubmatch(originalFilename); m != nil {
		date := m[1]
		return &SourceFile{
			Path:        srcPath,
			Store:       storeName,
			Date:        date,
			FileType:    FileTypeOrder,
			NewFilename: fmt.Sprintf("%s 스마트스토어_주문조회_%s.xlsx", storeName, date),
		}
	}

	if m := perfFilePattern.FindStringSubmatch(originalFilename); m != nil {
		date := m[1]
		return &SourceFile{
			Path:        srcPath,
			Store:       storeName,
			Date:        date,
			FileType:    FileTypePerformance,
			NewFilename: fmt.Sprintf("%s 상품성과_%s.xlsx", storeName, date),
		}
	}

	// 两种模式都不匹配，忽略
	return nil
}

// OrderFilename 返回(店铺,日期)对应的주문조회文件名
func OrderFilename(store, date string) string {
	return fmt.Sprintf("%s 스마트스토어_주문조회_%s.xlsx", store, date)
}

// PerfFilename 返回(店铺,日期)对应的상품성과文件名
func PerfFilename(store, date string) string {
	return fmt.Sprintf("%s 상품성과_%s.xlsx", store, date)
}

// IndividualReportFilename 返回(店铺,日期)对应的个别报告文件名
func IndividualReportFilename(store, date string) string {
	return fmt.Sprintf("%s_통합_리포트_%s.xlsx", store, date)
}

// ConsolidatedReportFilename 返回指定日期的全体通合报告文件名
func ConsolidatedReportFilename(date string) string {
	return fmt.Sprintf("전체_통합_리포트_%s.xlsx", date)
}

// isLockFile 判断是否为Office锁定/临时文件
func isLockFile(name string) bool {
	return strings.HasPrefix(name, "~")
}
