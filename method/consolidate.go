package method

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// 个别报告文件名末尾的日期
var reportDatePattern = regexp.MustCompile(`_(\d{4}-\d{2}-\d{2})\.xlsx$`)

// 전체통합时求和的列
var consolidateSumColumns = []string{
	"수량", "환불수량", "결제수", "환불건수", "가구매 개수",
	"결제금액", "환불금액", "가구매 금액", "가구매 비용",
	"순매출", "매출", "판매마진", "순이익", "리워드",
}

// 전체통합时求平均的列（百分比列平均后再保留1位小数）
var consolidateMeanColumns = []string{
	"판매가", "마진율", "광고비율", "이윤율",
}

var percentColumns = map[string]bool{
	"마진율": true, "광고비율": true, "이윤율": true,
}

// consolidatedKey 전체통합的分组键
type consolidatedKey struct {
	Store       string
	ProductID   string
	ProductName string
	Option      string
}

// consolidatedRow 전체통합的一行汇总结果
type consolidatedRow struct {
	consolidatedKey
	sums   map[string]float64
	counts map[string]int
}

// ConsolidateDailyReports 把同一天的所有个别报告按店铺标记后合并为전체통합报告
// 返回生成的전체통합报告个数
func ConsolidateDailyReports(ctx *RunContext) int {
	log.Println("--- 2단계: 날짜별전체통합报告生成开始 ---")

	entries, err := os.ReadDir(ctx.ProcessingDir)
	if err != nil {
		log.Printf("处理区目录读取失败: %v", err)
		return 0
	}

	// 按日期分组个别报告
	reportsByDate := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isLockFile(name) {
			continue
		}
		if !strings.Contains(name, "_통합_리포트_") || strings.HasPrefix(name, "전체_") {
			continue
		}
		m := reportDatePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		reportsByDate[m[1]] = append(reportsByDate[m[1]], name)
	}

	if len(reportsByDate) == 0 {
		log.Println("没有可供통합的个别报告。")
		return 0
	}

	dates := make([]string, 0, len(reportsByDate))
	for date := range reportsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	generated := 0
	for _, date := range dates {
		files := reportsByDate[date]
		sort.Strings(files)
		log.Printf("- %s 날짜의 %d个报告开始통합...", date, len(files))

		outputFilename := ConsolidatedReportFilename(date)
		outputPath := filepath.Join(ctx.ProcessingDir, outputFilename)

		rowCount, err := consolidateDate(ctx, date, files, outputPath)
		if err != nil {
			log.Printf("-> %s 통합失败: %v", date, err)
			continue
		}

		log.Printf("-> '%s' 生成完成。", outputFilename)
		generated++
		saveReportRun("전체", date, outputFilename, rowCount, "consolidated")
	}

	log.Println("--- 2단계: 날짜별전체통합报告生成完成 ---")
	return generated
}

// consolidateDate 合并一个日期的所有个别报告并写出전체통합文件
func consolidateDate(ctx *RunContext, date string, files []string, outputPath string) (int, error) {
	index := make(map[consolidatedKey]int)
	var rows []consolidatedRow

	loaded := 0
	for _, filename := range files {
		store := strings.SplitN(filename, "_통합_리포트_", 2)[0]
		path := filepath.Join(ctx.ProcessingDir, filename)

		if err := mergeReportFile(path, store, index, &rows); err != nil {
			// 单个报告读取失败只跳过该文件
			log.Printf("-> 报告文件读取失败 %s: %v", filename, err)
			continue
		}
		loaded++
	}

	if loaded == 0 || len(rows) == 0 {
		return 0, fmt.Errorf("没有可用的报告数据")
	}

	// 按(스토어명,상품ID,상품명,옵션정보)排序
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Store != rows[j].Store {
			return rows[i].Store < rows[j].Store
		}
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].Option < rows[j].Option
	})

	if err := writeConsolidatedReport(outputPath, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// mergeReportFile 读入一个个别报告的정리된 데이터表，打上店铺标记后并入汇总
func mergeReportFile(path, store string, index map[consolidatedKey]int, rows *[]consolidatedRow) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheetRows, err := f.GetRows("정리된 데이터")
	if err != nil {
		return fmt.Errorf("정리된 데이터表读取失败: %v", err)
	}
	if len(sheetRows) <= 1 {
		return nil
	}

	headerMap := buildHeaderMap(sheetRows[0])
	idIdx, hasID := headerMap["상품ID"]
	nameIdx, hasName := headerMap["상품명"]
	optionIdx, hasOption := headerMap["옵션정보"]
	if !hasID || !hasName {
		return fmt.Errorf("报告文件缺少상품ID/상품명列")
	}

	for _, row := range sheetRows[1:] {
		key := consolidatedKey{
			Store:       store,
			ProductID:   strings.TrimSpace(cellAt(row, idIdx)),
			ProductName: strings.TrimSpace(cellAt(row, nameIdx)),
		}
		if hasOption {
			key.Option = strings.TrimSpace(cellAt(row, optionIdx))
		}

		i, ok := index[key]
		if !ok {
			i = len(*rows)
			index[key] = i
			*rows = append(*rows, consolidatedRow{
				consolidatedKey: key,
				sums:            make(map[string]float64),
				counts:          make(map[string]int),
			})
		}

		for _, column := range consolidateSumColumns {
			colIdx, exists := headerMap[column]
			if !exists {
				continue
			}
			(*rows)[i].sums[column] += fillNaN(parseNumeric(cellAt(row, colIdx)))
		}
		for _, column := range consolidateMeanColumns {
			colIdx, exists := headerMap[column]
			if !exists {
				continue
			}
			(*rows)[i].sums[column] += fillNaN(parseNumeric(cellAt(row, colIdx)))
			(*rows)[i].counts[column]++
		}
	}

	return nil
}

// consolidatedColumns 전체통합报告的输出列顺序：스토어명在前，其余沿用个别报告的列序
// 按单件计的列（개당*）在店铺间合并后失去意义，不进入전체통합
func consolidatedColumns() []string {
	columns := []string{"스토어명"}
	aggregated := make(map[string]bool)
	for _, c := range consolidateSumColumns {
		aggregated[c] = true
	}
	for _, c := range consolidateMeanColumns {
		aggregated[c] = true
	}
	for _, c := range ReportColumns {
		if c == "상품ID" || c == "상품명" || c == "옵션정보" || aggregated[c] {
			columns = append(columns, c)
		}
	}
	return columns
}

// consolidatedValue 取전체통합行中指定列的值
func consolidatedValue(row consolidatedRow, column string) interface{} {
	switch column {
	case "스토어명":
		return row.Store
	case "상품ID":
		return row.ProductID
	case "상품명":
		return row.ProductName
	case "옵션정보":
		return row.Option
	}

	value := row.sums[column]
	if count := row.counts[column]; count > 0 {
		value /= float64(count)
	}
	if percentColumns[column] {
		value = round1(value)
	}
	return value
}

// writeConsolidatedReport 写出전체통합报告工作簿
func writeConsolidatedReport(outputPath string, rows []consolidatedRow) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("关闭Excel文件失败: %v", err)
		}
	}()

	sheetName := "전체 통합 데이터"
	f.SetSheetName("Sheet1", sheetName)

	columns := consolidatedColumns()
	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("单元格坐标计算失败: %v", err)
		}
		f.SetCellValue(sheetName, cell, column)
	}

	for r, row := range rows {
		for c, column := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("单元格坐标计算失败: %v", err)
			}
			f.SetCellValue(sheetName, cell, consolidatedValue(row, column))
		}
	}

	setContentColumnWidths(f, sheetName, columns, len(rows), func(r, c int) string {
		return fmt.Sprintf("%v", consolidatedValue(rows[r], columns[c]))
	})

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("전체통합报告保存失败: %v", err)
	}
	return nil
}
