package method

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touchFile 创建一个占位文件，分类只看路径和大小，不看内容
func touchFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("dummy"), 0644))
}

// TestGetFileInfoOrderFile 주문조회文件的分类
func TestGetFileInfoOrderFile(t *testing.T) {
	ctx := newTestContext(t)

	path := filepath.Join(ctx.WatchDir, "가게A", "스마트스토어_주문조회_2024-01-10.xlsx")
	touchFile(t, path)

	info := GetFileInfo(ctx, path)
	require.NotNil(t, info)
	assert.Equal(t, "가게A", info.Store)
	assert.Equal(t, "2024-01-10", info.Date)
	assert.Equal(t, FileTypeOrder, info.FileType)
	assert.Equal(t, "가게A 스마트스토어_주문조회_2024-01-10.xlsx", info.NewFilename)
}

// TestGetFileInfoPerfFile 상품성과文件允许日期后带任意后缀（如浏览器的(1)）
func TestGetFileInfoPerfFile(t *testing.T) {
	ctx := newTestContext(t)

	path := filepath.Join(ctx.WatchDir, "가게A", "상품성과_2024-01-10 (1).xlsx")
	touchFile(t, path)

	info := GetFileInfo(ctx, path)
	require.NotNil(t, info)
	assert.Equal(t, FileTypePerformance, info.FileType)
	assert.Equal(t, "가게A 상품성과_2024-01-10.xlsx", info.NewFilename)
}

// TestGetFileInfoRejects 不合格文件一律忽略返回nil
func TestGetFileInfoRejects(t *testing.T) {
	ctx := newTestContext(t)

	// 监视根目录下的文件不归属任何店铺
	topLevel := filepath.Join(ctx.WatchDir, "스마트스토어_주문조회_2024-01-10.xlsx")
	touchFile(t, topLevel)
	assert.Nil(t, GetFileInfo(ctx, topLevel))

	// 两种模式都不匹配的文件名
	unknown := filepath.Join(ctx.WatchDir, "가게A", "아무거나.xlsx")
	touchFile(t, unknown)
	assert.Nil(t, GetFileInfo(ctx, unknown))

	// 扩展名不对
	csv := filepath.Join(ctx.WatchDir, "가게A", "스마트스토어_주문조회_2024-01-10.csv")
	touchFile(t, csv)
	assert.Nil(t, GetFileInfo(ctx, csv))

	// 不存在的文件
	missing := filepath.Join(ctx.WatchDir, "가게A", "스마트스토어_주문조회_2024-02-01.xlsx")
	assert.Nil(t, GetFileInfo(ctx, missing))
}

// TestReportFilenames 报告文件名的拼装
func TestReportFilenames(t *testing.T) {
	assert.Equal(t, "가게A_통합_리포트_2024-01-10.xlsx", IndividualReportFilename("가게A", "2024-01-10"))
	assert.Equal(t, "전체_통합_리포트_2024-01-10.xlsx", ConsolidatedReportFilename("2024-01-10"))
}

// TestIsLockFile Office锁定文件的判定
func TestIsLockFile(t *testing.T) {
	assert.True(t, isLockFile("~$스마트스토어_주문조회_2024-01-10.xlsx"))
	assert.False(t, isLockFile("스마트스토어_주문조회_2024-01-10.xlsx"))
}
