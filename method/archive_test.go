package method

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMoveFileNoOverwrite 目标已存在时移动报错，两个文件都原样保留
func TestMoveFileNoOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.xlsx")
	dest := filepath.Join(dir, "dest.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0644))

	err := moveFile(src, dest)
	require.Error(t, err)

	assert.FileExists(t, src)
	data, _ := os.ReadFile(dest)
	assert.Equal(t, "old", string(data))
}

// TestArchiveReportFileEqualSize 同名同大小视为重复生成，直接替换不留백업
func TestArchiveReportFileEqualSize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "가게A_통합_리포트_2024-01-10.xlsx")
	dest := filepath.Join(dir, "archive", "가게A_통합_리포트_2024-01-10.xlsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(src, []byte("AAAA"), 0644))
	require.NoError(t, os.WriteFile(dest, []byte("BBBB"), 0644))

	require.NoError(t, archiveReportFile(src, dest))

	assert.NoFileExists(t, src)
	data, _ := os.ReadFile(dest)
	assert.Equal(t, "AAAA", string(data))

	backups, _ := filepath.Glob(filepath.Join(filepath.Dir(dest), "*_backup_*"))
	assert.Empty(t, backups)
}

// TestArchiveReportFileDifferentSize 同名不同大小时旧文件改名为백업，两个版本都保留
func TestArchiveReportFileDifferentSize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "가게A_통합_리포트_2024-01-10.xlsx")
	dest := filepath.Join(dir, "archive", "가게A_통합_리포트_2024-01-10.xlsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(src, []byte("new content"), 0644))
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0644))

	require.NoError(t, archiveReportFile(src, dest))

	assert.NoFileExists(t, src)
	data, _ := os.ReadFile(dest)
	assert.Equal(t, "new content", string(data))

	backups, _ := filepath.Glob(filepath.Join(filepath.Dir(dest), "*_backup_*.xlsx"))
	require.Len(t, backups, 1)
	backupData, _ := os.ReadFile(backups[0])
	assert.Equal(t, "old", string(backupData))
}

// TestFinalizeSkippedOnStopFlag 停止哨兵存在时收尾整体跳过
func TestFinalizeSkippedOnStopFlag(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.RequestStop())
	defer ctx.ClearStopFlag()

	summary := FinalizeAllProcessing(ctx)
	assert.Equal(t, FinalizeSummary{}, summary)
}
