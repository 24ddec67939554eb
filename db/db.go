package db

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"smartstore_report/config"
)

// DB 全局数据库连接，连接失败时保持nil，文件处理流水线不依赖数据库
var DB *gorm.DB

// InitDB 初始化数据库连接
// 数据库只承担运行记录和管理用户，连不上时只记录警告不中断启动
func InitDB(cfg config.Config) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("数据库连接失败，运行记录功能不可用: %v", err)
		return
	}

	DB = database
	log.Println("数据库连接成功")
}
