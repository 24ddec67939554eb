package method

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placePairInStoreDir 在店铺目录放置一对원본文件（주문조회为真实Excel，상품성과内容不参与计算）
func placePairInStoreDir(t *testing.T, ctx *RunContext, store, date string) {
	t.Helper()

	storeDir := filepath.Join(ctx.WatchDir, store)
	require.NoError(t, os.MkdirAll(storeDir, 0755))

	writeTestXLSX(t, filepath.Join(storeDir, "스마트스토어_주문조회_"+date+".xlsx"), [][]interface{}{
		{"상품주문번호", "상품ID", "상품명", "옵션정보", "클레임상태", "수량"},
		{"ORD-1", "1001", "상품A", "", "정상", 5},
	})
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, "상품성과_"+date+".xlsx"), []byte("perf"), 0644))
}

// TestRunBatchEndToEnd 手动批处理端到端：扫描、配对、报告、통합、保管一次做完
func TestRunBatchEndToEnd(t *testing.T) {
	ctx := newTestContext(t)

	writeMarginFile(t, ctx, [][]interface{}{
		{"1001", "상품A", 1000, 0.3, "", "O"},
	})
	placePairInStoreDir(t, ctx, "가게A", "2024-01-10")

	require.NoError(t, RunBatch(ctx))

	// 원본文件移入원본_보관함
	assert.FileExists(t, filepath.Join(ctx.SourceArchiveDir, OrderFilename("가게A", "2024-01-10")))
	assert.FileExists(t, filepath.Join(ctx.SourceArchiveDir, PerfFilename("가게A", "2024-01-10")))

	// 个别报告和전체통합报告移入리포트보관함
	assert.FileExists(t, filepath.Join(ctx.ReportArchiveDir, IndividualReportFilename("가게A", "2024-01-10")))
	assert.FileExists(t, filepath.Join(ctx.ReportArchiveDir, ConsolidatedReportFilename("2024-01-10")))

	// 处理区清空
	sourceFiles, reportFiles := listProcessingFiles(ctx)
	assert.Empty(t, sourceFiles)
	assert.Empty(t, reportFiles)

	// 店铺目录里的源文件已被移走
	entries, err := os.ReadDir(filepath.Join(ctx.WatchDir, "가게A"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestProcessIncompleteFiles 处理区中已配对但没有报告的组被补做
func TestProcessIncompleteFiles(t *testing.T) {
	ctx := newTestContext(t)

	writeMarginFile(t, ctx, [][]interface{}{
		{"1001", "상품A", 1000, 0.3, "", "O"},
	})

	// 直接把规范化命名的文件对放进处理区，模拟上次中断后的状态
	writeOrderFile(t, ctx, "가게A", "2024-01-10", [][]interface{}{
		{"ORD-1", "1001", "상품A", "", "정상", 5},
	})
	require.NoError(t, os.WriteFile(
		filepath.Join(ctx.ProcessingDir, PerfFilename("가게A", "2024-01-10")), []byte("perf"), 0644))

	ProcessIncompleteFiles(ctx)

	assert.FileExists(t, filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-10")))
}

// TestProcessIncompleteFilesUnpaired 文件对不齐全的组保持原状
func TestProcessIncompleteFilesUnpaired(t *testing.T) {
	ctx := newTestContext(t)

	writeMarginFile(t, ctx, [][]interface{}{
		{"1001", "상품A", 1000, 0.3, "", "O"},
	})
	writeOrderFile(t, ctx, "가게A", "2024-01-10", [][]interface{}{
		{"ORD-1", "1001", "상품A", "", "정상", 5},
	})

	ProcessIncompleteFiles(ctx)

	assert.NoFileExists(t, filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-10")))
	assert.FileExists(t, filepath.Join(ctx.ProcessingDir, OrderFilename("가게A", "2024-01-10")))
}

// TestProcessFileMovesAndPairs 单文件处理：移动进处理区并在配对齐全时生成报告
func TestProcessFileMovesAndPairs(t *testing.T) {
	ctx := newTestContext(t)

	writeMarginFile(t, ctx, [][]interface{}{
		{"1001", "상품A", 1000, 0.3, "", "O"},
	})
	placePairInStoreDir(t, ctx, "가게A", "2024-01-10")

	storeDir := filepath.Join(ctx.WatchDir, "가게A")

	// 先处理상품성과：配对未齐全，只移动
	ProcessFile(ctx, filepath.Join(storeDir, "상품성과_2024-01-10.xlsx"))
	assert.FileExists(t, filepath.Join(ctx.ProcessingDir, PerfFilename("가게A", "2024-01-10")))
	assert.NoFileExists(t, filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-10")))

	// 再处理주문조회：配对齐全，报告生成
	ProcessFile(ctx, filepath.Join(storeDir, "스마트스토어_주문조회_2024-01-10.xlsx"))
	assert.FileExists(t, filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-10")))
}

// TestStopFlagLifecycle 停止哨兵的写入、检测和清除
func TestStopFlagLifecycle(t *testing.T) {
	ctx := newTestContext(t)

	assert.False(t, ctx.StopRequested())
	require.NoError(t, ctx.RequestStop())
	assert.True(t, ctx.StopRequested())
	ctx.ClearStopFlag()
	assert.False(t, ctx.StopRequested())
}
