package method

import (
	"log"

	"smartstore_report/db"
	"smartstore_report/models"
)

// saveReportRun 记录一次报告生成，数据库未连接时静默跳过
func saveReportRun(store, date, filename string, rowCount int, reportType string) {
	if db.DB == nil {
		return
	}

	run := models.ReportRun{
		Store:      store,
		ReportDate: date,
		Filename:   filename,
		RowCount:   rowCount,
		ReportType: reportType,
	}
	if err := db.DB.Create(&run).Error; err != nil {
		log.Printf("报告运行记录保存失败: %v", err)
	}
}
