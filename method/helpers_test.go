package method

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"smartstore_report/config"
)

// newTestContext 构建一个基于临时目录的测试会话上下文
func newTestContext(t *testing.T) *RunContext {
	t.Helper()

	base := t.TempDir()
	ctx := NewRunContext(config.Config{
		BaseDir:  base,
		WatchDir: filepath.Join(base, "downloads"),
	})
	require.NoError(t, ctx.InitializeFolders())
	return ctx
}

// writeTestXLSX 写出一个单表Excel测试文件
func writeTestXLSX(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// readTestSheet 读取Excel文件指定表的全部行
func readTestSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

// findColumn 在表头行中定位列索引
func findColumn(t *testing.T, header []string, name string) int {
	t.Helper()

	for i, h := range header {
		if h == name {
			return i
		}
	}
	t.Fatalf("表头中找不到列: %s", name)
	return -1
}

// cellFloat 取一行中指定列的数值
func cellFloat(t *testing.T, row []string, idx int) float64 {
	t.Helper()

	v := parseNumeric(cellAt(row, idx))
	return v
}
