package method

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReportColumns 报告的固定列集合（声明顺序即输出顺序）
var ReportColumns = []string{
	"상품ID", "상품명", "옵션정보", "수량", "환불수량", "결제수", "환불건수",
	"가구매 개수", "결제금액", "환불금액", "판매가", "마진율", "광고비율", "이윤율",
	"가구매 금액", "가구매 비용", "개당 가구매 금액", "개당 가구매 비용",
	"순매출", "매출", "판매마진", "순이익", "리워드",
}

// 取消/退款状态集合，命中的行计入환불수량
var cancelOrRefundStatuses = map[string]bool{
	"취소완료": true,
	"반품요청": true,
	"반품완료": true,
	"수거중":  true,
}

// 声明式表头映射：规范字段 -> 按优先级排列的候选表头，首个命中者生效
var (
	productIDHeaderCandidates = []string{"상품ID", "상품번호"}
	statusHeaderCandidates    = []string{"클레임상태", "상태", "주문상태", "처리상태", "배송상태", "주문처리상태", "결제상태"}
	quantityHeaderCandidates  = []string{"수량", "결제수량", "주문수량", "상품수량", "결제상품수량"}
)

// 대표옵션列中视为"真"的取值
var representativeTruthy = map[string]bool{
	"O": true, "Y": true, "TRUE": true,
}

// FileGroup 一个(店铺,业务日期)处理组
type FileGroup struct {
	Store string
	Date  string
}

// marginKey 마진정보的连接键
type marginKey struct {
	ProductID string
	Option    string
}

// marginRecord 마진정보中的一行
type marginRecord struct {
	ProductID        string
	Option           string
	Price            float64 // 판매가，解析失败为NaN
	MarginRate       float64 // 마진율，解析失败为NaN
	UnitPurchaseCost float64 // 개당 가구매 비용，列不存在或解析失败为NaN
	Representative   bool
}

// marginTable 加载后的마진정보参照表
type marginTable struct {
	byKey           map[marginKey]marginRecord
	emptyOptionByID map[string]marginRecord // 옵션정보为空的行，按商品ID索引（降级匹配用）
	repPriceMap     map[string]float64      // 대표옵션行的판매가
}

// orderRow 주문조회文件中的一行交易
type orderRow struct {
	ProductID      string
	ProductName    string
	Option         string
	Status         string
	OrderLineID    string
	Quantity       float64
	RefundQuantity float64
}

// orderData 加载后的주문조회数据
type orderData struct {
	rows           []orderRow
	hasProductName bool
	hasOrderLineID bool
}

// ReportRow 个别报告中的一行（옵션별集计结果加上所有派生字段）
type ReportRow struct {
	ProductID          string
	ProductName        string
	Option             string
	Quantity           float64
	RefundQuantity     float64
	OrderCount         float64 // 결제수
	RefundCount        float64 // 환불건수
	PurchaseCount      float64 // 가구매 개수
	PaidAmount         float64 // 결제금액
	RefundAmount       float64 // 환불금액
	Price              float64 // 판매가
	MarginRate         float64 // 마진율（百分比，保留1位小数）
	AdCostRatio        float64 // 광고비율（百分比，保留1位小数）
	ProfitRatio        float64 // 이윤율（百分比，保留1位小数）
	PurchaseAmount     float64 // 가구매 금액
	PurchaseCost       float64 // 가구매 비용
	UnitPurchaseAmount float64 // 개당 가구매 금액（대표판매가）
	UnitPurchaseCost   float64 // 개당 가구매 비용
	NetRevenue         float64 // 순매출
	Revenue            float64 // 매출
	GrossMargin        float64 // 판매마진
	NetProfit          float64 // 순이익
	Reward             float64 // 리워드
}

// parseNumeric 把单元格文本解析为数字，失败返回NaN
func parseNumeric(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// fillNaN NaN落为0
func fillNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// round1 四舍五入保留1位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// cellAt 取行中指定列的值，越界返回空字符串
func cellAt(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

// resolveColumn 按候选表头顺序解析列索引，首个命中者生效
func resolveColumn(headerMap map[string]int, candidates []string) (int, string, bool) {
	for _, name := range candidates {
		if idx, ok := headerMap[name]; ok {
			return idx, name, true
		}
	}
	return -1, "", false
}

// buildHeaderMap 解析表头行，建立表头名到列索引的映射
func buildHeaderMap(header []string) map[string]int {
	headerMap := make(map[string]int)
	for i, name := range header {
		headerMap[strings.TrimSpace(name)] = i
	}
	return headerMap
}

// readProtectedExcel 读取可能带密码保护的Excel文件
// 先尝试无密码打开，失败且提供了密码时用密码重试（显式降级分支，不靠异常流转）
func readProtectedExcel(path, password string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, nil
	}

	if password == "" {
		return nil, fmt.Errorf("文件打开失败且未提供密码: %v", err)
	}

	f, pwErr := excelize.OpenFile(path, excelize.Options{Password: password})
	if pwErr != nil {
		return nil, fmt.Errorf("密码解密失败: %v", pwErr)
	}
	return f, nil
}

// loadMarginTable 加载마진정보参照表并做规范化
// 必需列缺失时整个本轮处理中止（返回错误）
func loadMarginTable(marginFile string) (*marginTable, error) {
	f, err := excelize.OpenFile(marginFile)
	if err != nil {
		return nil, fmt.Errorf("마진정보文件读取失败 %s: %v", marginFile, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("마진정보数据读取失败: %v", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("마진정보文件内容为空")
	}

	headerMap := buildHeaderMap(rows[0])

	// 必需列检查（상품번호在加载时统一为상품ID）
	idIdx, _, hasID := resolveColumn(headerMap, productIDHeaderCandidates)
	_, hasName := headerMap["상품명"] // 상품명以주문조회文件为准，参照表中的상품명不参与连接
	priceIdx, hasPrice := headerMap["판매가"]
	marginIdx, hasMargin := headerMap["마진율"]
	if !hasID || !hasName || !hasPrice || !hasMargin {
		return nil, fmt.Errorf("마진정보文件缺少必需列（상품번호/상품명/판매가/마진율）")
	}

	optionIdx, hasOption := headerMap["옵션정보"]
	repIdx, hasRep := headerMap["대표옵션"]
	costIdx, hasCost := headerMap["개당 가구매 비용"]
	if !hasRep {
		log.Printf("警告: '%s'中没有'대표옵션'列。", filepath.Base(marginFile))
	}

	table := &marginTable{
		byKey:           make(map[marginKey]marginRecord),
		emptyOptionByID: make(map[string]marginRecord),
		repPriceMap:     make(map[string]float64),
	}

	duplicates := 0
	for _, row := range rows[1:] {
		productID := NormalizeProductID(cellAt(row, idIdx))
		if productID == "" {
			continue
		}

		record := marginRecord{
			ProductID:        productID,
			Price:            parseNumeric(cellAt(row, priceIdx)),
			MarginRate:       parseNumeric(cellAt(row, marginIdx)),
			UnitPurchaseCost: math.NaN(),
		}
		if hasOption {
			record.Option = NormalizeOptionInfo(cellAt(row, optionIdx))
		}
		if hasRep {
			record.Representative = representativeTruthy[strings.ToUpper(strings.TrimSpace(cellAt(row, repIdx)))]
		}
		if hasCost {
			record.UnitPurchaseCost = parseNumeric(cellAt(row, costIdx))
		}

		key := marginKey{ProductID: productID, Option: record.Option}
		if _, exists := table.byKey[key]; exists {
			// 重复的상품ID-옵션정보组合只保留第一条
			duplicates++
			continue
		}
		table.byKey[key] = record

		if record.Option == "" {
			if _, exists := table.emptyOptionByID[productID]; !exists {
				table.emptyOptionByID[productID] = record
			}
		}
		if record.Representative {
			if _, exists := table.repPriceMap[productID]; !exists {
				table.repPriceMap[productID] = fillNaN(record.Price)
			}
		}
	}

	if duplicates > 0 {
		log.Printf("警告: 마진정보中有%d条重复的상품ID-옵션정보组合，只保留首条。", duplicates)
	}

	log.Printf("'%s' 文件加载成功。", filepath.Base(marginFile))
	return table, nil
}

// loadOrderData 加载주문조회文件并做列解析和规范化
func loadOrderData(orderPath, password string) (*orderData, error) {
	f, err := readProtectedExcel(orderPath, password)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("주문조회数据读取失败: %v", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("주문조회文件为空或只有标题行")
	}

	headerMap := buildHeaderMap(rows[0])

	idIdx, _, hasID := resolveColumn(headerMap, productIDHeaderCandidates)
	if !hasID {
		return nil, fmt.Errorf("주문조회文件缺少必需列: 상품ID")
	}

	nameIdx, hasName := headerMap["상품명"]
	optionIdx, hasOption := headerMap["옵션정보"]
	lineIDIdx, hasLineID := headerMap["상품주문번호"]

	statusIdx, statusCol, hasStatus := resolveColumn(headerMap, statusHeaderCandidates)
	if hasStatus && statusCol != "클레임상태" {
		log.Printf("-> '%s'列作为클레임상태使用。", statusCol)
	}
	if !hasStatus {
		log.Printf("警告: 找不到클레임상태列，默认按'정상'处理。")
	}

	quantityIdx, quantityCol, hasQuantity := resolveColumn(headerMap, quantityHeaderCandidates)
	if hasQuantity && quantityCol != "수량" {
		log.Printf("-> '%s'列作为수량使用。", quantityCol)
	}
	if !hasQuantity {
		log.Printf("警告: 找不到수량列，默认值1。")
	}

	data := &orderData{
		hasProductName: hasName,
		hasOrderLineID: hasLineID,
	}

	for _, row := range rows[1:] {
		r := orderRow{
			ProductID: NormalizeProductID(cellAt(row, idIdx)),
			Status:    "정상",
			Quantity:  1,
		}
		if hasName {
			r.ProductName = strings.TrimSpace(cellAt(row, nameIdx))
		}
		if hasOption {
			r.Option = NormalizeOptionInfo(cellAt(row, optionIdx))
		}
		if hasStatus {
			if s := strings.TrimSpace(cellAt(row, statusIdx)); s != "" {
				r.Status = s
			}
		}
		if hasQuantity {
			if q := parseNumeric(cellAt(row, quantityIdx)); !math.IsNaN(q) {
				r.Quantity = q
			}
		}
		if hasLineID {
			r.OrderLineID = strings.TrimSpace(cellAt(row, lineIDIdx))
		}

		// 취소/반품状态的行只计入환불수량，不计入수량
		if cancelOrRefundStatuses[r.Status] {
			r.RefundQuantity = r.Quantity
			r.Quantity = 0
		}

		data.rows = append(data.rows, r)
	}

	return data, nil
}

// aggregateKey 옵션별集计的分组键
type aggregateKey struct {
	ProductID   string
	ProductName string
	Option      string
}

// optionAggregate 옵션별集计结果
type optionAggregate struct {
	aggregateKey
	Quantity       float64
	RefundQuantity float64
}

// aggregateByOption 按(상품ID,상품명,옵션정보)分组汇总수량和환불수량
func aggregateByOption(data *orderData) []optionAggregate {
	index := make(map[aggregateKey]int)
	var aggregates []optionAggregate

	for _, row := range data.rows {
		key := aggregateKey{ProductID: row.ProductID, ProductName: row.ProductName, Option: row.Option}
		if i, ok := index[key]; ok {
			aggregates[i].Quantity += row.Quantity
			aggregates[i].RefundQuantity += row.RefundQuantity
			continue
		}
		index[key] = len(aggregates)
		aggregates = append(aggregates, optionAggregate{
			aggregateKey:   key,
			Quantity:       row.Quantity,
			RefundQuantity: row.RefundQuantity,
		})
	}

	return aggregates
}

// countDistinctOrderLines 按(상품ID,옵션정보)统计去重后的상품주문번호个数
// refundOnly为true时只统计取消/退款状态的行
func countDistinctOrderLines(data *orderData, refundOnly bool) map[marginKey]float64 {
	seen := make(map[marginKey]map[string]bool)
	for _, row := range data.rows {
		if row.OrderLineID == "" {
			continue
		}
		if refundOnly && !cancelOrRefundStatuses[row.Status] {
			continue
		}
		key := marginKey{ProductID: row.ProductID, Option: row.Option}
		if seen[key] == nil {
			seen[key] = make(map[string]bool)
		}
		seen[key][row.OrderLineID] = true
	}

	counts := make(map[marginKey]float64)
	for key, ids := range seen {
		counts[key] = float64(len(ids))
	}
	return counts
}

// GenerateIndividualReports 基于주문조회文件为每个(店铺,日期)组生成옵션별통합报告
// 返回已经有报告（本次生成或之前已生成）的组列表
func GenerateIndividualReports(ctx *RunContext) []FileGroup {
	log.Println("--- 1단계: 주문조회基础个别통합报告生成开始 ---")

	margin, err := loadMarginTable(ctx.MarginFile)
	if err != nil {
		log.Printf("마진정보加载失败: %v", err)
		return nil
	}

	entries, err := os.ReadDir(ctx.ProcessingDir)
	if err != nil {
		log.Printf("处理区目录读取失败: %v", err)
		return nil
	}

	var orderFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".xlsx") || isLockFile(name) {
			continue
		}
		if strings.Contains(name, "통합_리포트") || strings.Contains(name, "마진정보") {
			continue
		}
		if strings.Contains(name, "스마트스토어_주문조회") {
			orderFiles = append(orderFiles, name)
		}
	}

	if len(orderFiles) == 0 {
		log.Println("没有需要处理的주문조회文件。")
		return nil
	}

	log.Printf("共%d个주문조회文件需要生成报告。", len(orderFiles))
	var processedGroups []FileGroup

	for _, orderFile := range orderFiles {
		parts := strings.SplitN(orderFile, " 스마트스토어_주문조회_", 2)
		if len(parts) != 2 {
			continue
		}
		store := parts[0]
		date := strings.TrimSuffix(parts[1], ".xlsx")

		outputFilename := IndividualReportFilename(store, date)
		outputPath := filepath.Join(ctx.ProcessingDir, outputFilename)

		if fileExists(outputPath) {
			log.Printf("- %s (%s) 报告已经生成过了。", store, date)
			processedGroups = append(processedGroups, FileGroup{Store: store, Date: date})
			continue
		}

		log.Printf("- %s (%s) 주문조회基础数据处理开始...", store, date)

		orderPath := filepath.Join(ctx.ProcessingDir, orderFile)
		rowCount, err := buildGroupReport(ctx, margin, store, date, orderPath, outputPath)
		if err != nil {
			// 单组失败只记录并继续，留给未完成扫描下次重试
			log.Printf("-> %s(%s) 处理中发生错误: %v", store, date, err)
			continue
		}

		log.Printf("-> '%s' 生成完成。", outputFilename)
		processedGroups = append(processedGroups, FileGroup{Store: store, Date: date})
		saveReportRun(store, date, outputFilename, rowCount, "individual")
	}

	log.Println("--- 1단계: 주문조회基础个别통합报告生成完成 ---")
	return processedGroups
}

// buildGroupReport 为一个(店铺,日期)组执行完整的合并计算并写出报告文件
func buildGroupReport(ctx *RunContext, margin *marginTable, store, date, orderPath, outputPath string) (int, error) {
	data, err := loadOrderData(orderPath, ctx.OrderFilePassword)
	if err != nil {
		return 0, err
	}
	log.Printf("-> %s(%s) 주문조회文件加载完成: %d行", store, date, len(data.rows))

	aggregates := aggregateByOption(data)
	log.Printf("-> %s(%s) 옵션별集计完成: %d个옵션", store, date, len(aggregates))

	// 마진정보左连接，先按(상품ID,옵션정보)匹配
	matched := make([]marginRecord, len(aggregates))
	found := make([]bool, len(aggregates))
	matchCount := 0
	for i, agg := range aggregates {
		if record, ok := margin.byKey[marginKey{ProductID: agg.ProductID, Option: agg.Option}]; ok {
			matched[i] = record
			found[i] = true
			matchCount++
		}
	}

	// 一条都没匹配上时降级：只按상품ID匹配옵션정보为空的마진行（用于不带옵션级마진数据的文件）
	if matchCount == 0 {
		log.Printf("-> %s(%s) 마진정보匹配失败！尝试忽略옵션정보只按상품ID的降级匹配...", store, date)
		for i, agg := range aggregates {
			if record, ok := margin.emptyOptionByID[agg.ProductID]; ok {
				matched[i] = record
				found[i] = true
				matchCount++
			}
		}
		if matchCount > 0 {
			log.Printf("-> %s(%s) 降级匹配成功: %d个商品匹配", store, date, matchCount)
		}
	}
	log.Printf("-> %s(%s) 合并完成: %d行, 마진匹配 %d行", store, date, len(aggregates), matchCount)

	orderCounts := countDistinctOrderLines(data, false)
	refundCounts := countDistinctOrderLines(data, true)

	reportRows := make([]ReportRow, 0, len(aggregates))
	for i, agg := range aggregates {
		productName := agg.ProductName
		if !data.hasProductName || productName == "" {
			// 주문조회没有상품명时暂用상품ID代替
			productName = agg.ProductID
		}

		row := ReportRow{
			ProductID:      agg.ProductID,
			ProductName:    productName,
			Option:         agg.Option,
			Quantity:       agg.Quantity,
			RefundQuantity: agg.RefundQuantity,
		}

		// 未匹配行的마진율/판매가/대표옵션补0/0/false
		var marginRate, price, unitCost float64
		var representative bool
		if found[i] {
			marginRate = fillNaN(matched[i].MarginRate)
			price = fillNaN(matched[i].Price)
			unitCost = fillNaN(matched[i].UnitPurchaseCost)
			representative = matched[i].Representative
		}

		// 派生字段，按固定顺序计算
		row.Price = price
		row.PaidAmount = row.Quantity * price
		row.RefundAmount = row.RefundQuantity * price
		row.Revenue = row.PaidAmount - row.RefundAmount

		repPrice := margin.repPriceMap[agg.ProductID]

		if representative {
			row.PurchaseCount = float64(LookupPurchaseCount(ctx.PurchaseFile, agg.ProductID, date))
			if row.PurchaseCount > 0 {
				log.Printf("-> %s(%s) 商品 %s 가구매개수: %.0f", store, date, agg.ProductID, row.PurchaseCount)
			}
		}

		row.UnitPurchaseAmount = repPrice
		row.PurchaseAmount = repPrice * row.PurchaseCount
		row.NetRevenue = row.Revenue - row.PurchaseAmount
		row.UnitPurchaseCost = unitCost
		row.PurchaseCost = unitCost * row.PurchaseCount

		if representative {
			row.Reward = float64(LookupReward(ctx.RewardFile, agg.ProductID, date))
			if row.Reward > 0 {
				log.Printf("-> %s(%s) 商品 %s 리워드: %.0f원", store, date, agg.ProductID, row.Reward)
			}
		}

		row.GrossMargin = row.NetRevenue * marginRate

		// 광고비율 = (리워드 + 가구매 비용) / 순매출，순매출为0时定义为0，绝不除零
		adCostRatio := 0.0
		if row.NetRevenue != 0 && !math.IsNaN(row.NetRevenue) {
			adCostRatio = (row.Reward + row.PurchaseCost) / row.NetRevenue
		}

		profitRatio := marginRate - adCostRatio
		row.NetProfit = row.GrossMargin - row.PurchaseCost - row.Reward

		// 百分比字段统一×100保留1位小数
		row.MarginRate = round1(marginRate * 100)
		row.AdCostRatio = round1(adCostRatio * 100)
		row.ProfitRatio = round1(profitRatio * 100)

		key := marginKey{ProductID: agg.ProductID, Option: agg.Option}
		if data.hasOrderLineID {
			row.OrderCount = orderCounts[key]
			row.RefundCount = refundCounts[key]
		}

		reportRows = append(reportRows, row)
	}

	// 按(상품명,옵션정보)排序
	sort.SliceStable(reportRows, func(i, j int) bool {
		if reportRows[i].ProductName != reportRows[j].ProductName {
			return reportRows[i].ProductName < reportRows[j].ProductName
		}
		return reportRows[i].Option < reportRows[j].Option
	})

	// 数据汇总日志
	var totalQuantity, totalRevenue, totalGrossMargin float64
	for _, row := range reportRows {
		totalQuantity += row.Quantity
		totalRevenue += row.Revenue
		totalGrossMargin += row.GrossMargin
	}
	log.Printf("-> %s(%s) 最终数据汇总: 옵션数 %d, 총수량 %.0f, 총매출 %.0f원, 총판매마진 %.0f원",
		store, date, len(reportRows), totalQuantity, totalRevenue, totalGrossMargin)

	if err := writeIndividualReport(outputPath, reportRows); err != nil {
		return 0, err
	}
	return len(reportRows), nil
}

// reportColumnValue 取报告行中指定列的值
func reportColumnValue(row ReportRow, column string) interface{} {
	switch column {
	case "상품ID":
		return row.ProductID
	case "상품명":
		return row.ProductName
	case "옵션정보":
		return row.Option
	case "수량":
		return row.Quantity
	case "환불수량":
		return row.RefundQuantity
	case "결제수":
		return row.OrderCount
	case "환불건수":
		return row.RefundCount
	case "가구매 개수":
		return row.PurchaseCount
	case "결제금액":
		return row.PaidAmount
	case "환불금액":
		return row.RefundAmount
	case "판매가":
		return row.Price
	case "마진율":
		return row.MarginRate
	case "광고비율":
		return row.AdCostRatio
	case "이윤율":
		return row.ProfitRatio
	case "가구매 금액":
		return row.PurchaseAmount
	case "가구매 비용":
		return row.PurchaseCost
	case "개당 가구매 금액":
		return row.UnitPurchaseAmount
	case "개당 가구매 비용":
		return row.UnitPurchaseCost
	case "순매출":
		return row.NetRevenue
	case "매출":
		return row.Revenue
	case "판매마진":
		return row.GrossMargin
	case "순이익":
		return row.NetProfit
	case "리워드":
		return row.Reward
	default:
		return ""
	}
}

// writeIndividualReport 写出个别报告工作簿：明细表加两个피벗表
func writeIndividualReport(outputPath string, rows []ReportRow) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("关闭Excel文件失败: %v", err)
		}
	}()

	detailSheet := "정리된 데이터"
	f.SetSheetName("Sheet1", detailSheet)

	// 表头
	for i, column := range ReportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("单元格坐标计算失败: %v", err)
		}
		f.SetCellValue(detailSheet, cell, column)
	}

	// 数据行
	for r, row := range rows {
		for c, column := range ReportColumns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("单元格坐标计算失败: %v", err)
			}
			f.SetCellValue(detailSheet, cell, reportColumnValue(row, column))
		}
	}

	// 按内容长度设置列宽
	setContentColumnWidths(f, detailSheet, ReportColumns, len(rows), func(r, c int) string {
		return fmt.Sprintf("%v", reportColumnValue(rows[r], ReportColumns[c]))
	})

	// 피벗表：상품명×옵션정보的수량与판매마진合计
	if err := writePivotSheet(f, "옵션별 판매수량", rows, func(row ReportRow) float64 { return row.Quantity }); err != nil {
		return err
	}
	if err := writePivotSheet(f, "옵션별 판매마진", rows, func(row ReportRow) float64 { return row.GrossMargin }); err != nil {
		return err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("报告文件保存失败: %v", err)
	}
	return nil
}

// writePivotSheet 写出一个상품명×옵션정보的합계피벗表，空值补0
func writePivotSheet(f *excelize.File, sheetName string, rows []ReportRow, value func(ReportRow) float64) error {
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("创建工作表失败 %s: %v", sheetName, err)
	}

	nameSet := make(map[string]bool)
	optionSet := make(map[string]bool)
	sums := make(map[[2]string]float64)
	for _, row := range rows {
		nameSet[row.ProductName] = true
		optionSet[row.Option] = true
		sums[[2]string{row.ProductName, row.Option}] += value(row)
	}

	names := sortedKeys(nameSet)
	options := sortedKeys(optionSet)

	f.SetCellValue(sheetName, "A1", "상품명")
	for c, option := range options {
		cell, err := excelize.CoordinatesToCellName(c+2, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, option)
	}

	for r, name := range names {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, name)
		for c, option := range options {
			cell, err := excelize.CoordinatesToCellName(c+2, r+2)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, cell, sums[[2]string{name, option}])
		}
	}

	return nil
}

// sortedKeys 返回排序后的键列表
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// setContentColumnWidths 按列内容最大长度设置列宽（最大长度+2）
func setContentColumnWidths(f *excelize.File, sheet string, columns []string, rowCount int, cellText func(r, c int) string) {
	for c, column := range columns {
		maxLen := len([]rune(column))
		for r := 0; r < rowCount; r++ {
			if l := len([]rune(cellText(r, c))); l > maxLen {
				maxLen = l
			}
		}
		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			continue
		}
		f.SetColWidth(sheet, colName, colName, float64(maxLen+2))
	}
}
