package method

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConsolidateDailyReports 两个店铺的个别报告合并为一个전체통합报告
func TestConsolidateDailyReports(t *testing.T) {
	ctx := newTestContext(t)

	rowA := ReportRow{
		ProductID: "1001", ProductName: "상품A", Option: "",
		Quantity: 10, RefundQuantity: 2, OrderCount: 1, RefundCount: 1,
		PaidAmount: 10000, RefundAmount: 2000, Revenue: 8000, NetRevenue: 8000,
		Price: 1000, MarginRate: 30.0, AdCostRatio: 0.0, ProfitRatio: 30.0,
		GrossMargin: 2400, NetProfit: 2400,
	}
	rowB := rowA
	rowB.Quantity = 4
	rowB.PaidAmount = 4000
	rowB.Revenue = 4000
	rowB.NetRevenue = 4000
	rowB.GrossMargin = 1200
	rowB.NetProfit = 1200
	rowB.MarginRate = 30.0

	require.NoError(t, writeIndividualReport(
		filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-10")), []ReportRow{rowA}))
	require.NoError(t, writeIndividualReport(
		filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게B", "2024-01-10")), []ReportRow{rowB}))

	generated := ConsolidateDailyReports(ctx)
	assert.Equal(t, 1, generated)

	outputPath := filepath.Join(ctx.ProcessingDir, ConsolidatedReportFilename("2024-01-10"))
	rows := readTestSheet(t, outputPath, "전체 통합 데이터")
	require.Len(t, rows, 3)

	header := rows[0]
	// 스토어명属于分组键，两个店铺各占一行，按店铺排序
	assert.Equal(t, "가게A", rows[1][findColumn(t, header, "스토어명")])
	assert.Equal(t, "가게B", rows[2][findColumn(t, header, "스토어명")])

	assert.InDelta(t, 10, cellFloat(t, rows[1], findColumn(t, header, "수량")), 0.001)
	assert.InDelta(t, 4, cellFloat(t, rows[2], findColumn(t, header, "수량")), 0.001)
	assert.InDelta(t, 2400, cellFloat(t, rows[1], findColumn(t, header, "판매마진")), 0.001)
	assert.InDelta(t, 30.0, cellFloat(t, rows[1], findColumn(t, header, "마진율")), 0.001)

	// 按单件计的列不进入전체통합
	for _, column := range header {
		assert.NotEqual(t, "개당 가구매 금액", column)
		assert.NotEqual(t, "개당 가구매 비용", column)
	}
}

// TestConsolidateSeparateDates 不同日期各自生成一个전체통합报告
func TestConsolidateSeparateDates(t *testing.T) {
	ctx := newTestContext(t)

	row := ReportRow{ProductID: "1001", ProductName: "상품A", Quantity: 1, Revenue: 1000}
	require.NoError(t, writeIndividualReport(
		filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-10")), []ReportRow{row}))
	require.NoError(t, writeIndividualReport(
		filepath.Join(ctx.ProcessingDir, IndividualReportFilename("가게A", "2024-01-11")), []ReportRow{row}))

	generated := ConsolidateDailyReports(ctx)
	assert.Equal(t, 2, generated)

	assert.FileExists(t, filepath.Join(ctx.ProcessingDir, ConsolidatedReportFilename("2024-01-10")))
	assert.FileExists(t, filepath.Join(ctx.ProcessingDir, ConsolidatedReportFilename("2024-01-11")))
}

// TestConsolidateNothingToDo 没有个别报告时不生成任何文件
func TestConsolidateNothingToDo(t *testing.T) {
	ctx := newTestContext(t)
	assert.Equal(t, 0, ConsolidateDailyReports(ctx))
}
