package models

import (
	"time"
)

// ReportRun 报告生成运行记录
type ReportRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Store      string    `gorm:"size:100;not null;index" json:"store"`
	ReportDate string    `gorm:"size:20;not null;index" json:"report_date"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	RowCount   int       `gorm:"not null" json:"row_count"`
	ReportType string    `gorm:"size:20;not null" json:"report_type"` // individual 或 consolidated
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 设置表名
func (rr *ReportRun) TableName() string {
	return "report_run"
}
