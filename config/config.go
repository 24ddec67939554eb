package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// JWTConfig JWT令牌配置
type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // 小时
	RefreshTokenTTL int // 小时
}

// SMSConfig 短信通知配置，未配置手机号时不发送通知
type SMSConfig struct {
	Enabled      bool
	PhoneNumber  string
	SignName     string
	TemplateCode string
}

// Config 应用配置
type Config struct {
	Database          DatabaseConfig
	JWTConfig         JWTConfig
	SMS               SMSConfig
	ServerPort        string
	BaseDir           string // 规则文件、마진정보.xlsx、stop.flag所在目录
	WatchDir          string // 监视的下载目录（按店铺分子目录）
	OrderFilePassword string // 주문조회文件的打开密码
	LogDir            string
	AutoStartMonitor  bool // 启动时是否自动开始监控
}

// LoadConfig 加载应用配置，从环境变量读取，未设置时使用默认值
func LoadConfig() Config {
	baseDir := getEnv("APP_BASE_DIR", ".")

	return Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "smartstore_report"),
		},
		JWTConfig: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "smartstore-report-secret"),
			AccessTokenTTL:  getEnvInt("JWT_ACCESS_TOKEN_TTL", 2),
			RefreshTokenTTL: getEnvInt("JWT_REFRESH_TOKEN_TTL", 24),
		},
		SMS: SMSConfig{
			Enabled:      getEnv("SMS_PHONE_NUMBER", "") != "",
			PhoneNumber:  getEnv("SMS_PHONE_NUMBER", ""),
			SignName:     getEnv("SMS_SIGN_NAME", ""),
			TemplateCode: getEnv("SMS_TEMPLATE_CODE", ""),
		},
		ServerPort:        getEnv("SERVER_PORT", "8088"),
		BaseDir:           baseDir,
		WatchDir:          getEnv("WATCH_DIR", filepath.Join(baseDir, "downloads")),
		OrderFilePassword: getEnv("ORDER_FILE_PASSWORD", "1234"),
		LogDir:            getEnv("LOG_DIR", filepath.Join(baseDir, "logs")),
		AutoStartMonitor:  getEnv("AUTO_START_MONITOR", "") == "1",
	}
}

// getEnv 读取环境变量，为空时返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 读取整数环境变量，解析失败时返回默认值
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
