package config

import (
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Seating SeatingConfig
	Log     LogConfig
}

type SeatingConfig struct {
	BaseURL           string
	AreaSlug          string
	SessionCookieName string
	SessionCookie     string
}

type LogConfig struct {
	Level string
}

var AppConfig *Config

// LoadConfig 讀取環境變數；若目錄下有 .env 則先載入
func LoadConfig() *Config {
	// .env 不存在時直接使用系統環境變數
	_ = godotenv.Load()

	AppConfig = &Config{
		Seating: GetSeatingConfig(),
		Log:     GetLogConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	return &Config{
		Seating: SeatingConfig{
			BaseURL:           "http://127.0.0.1:0", // 測試時由 httptest server 覆寫
			AreaSlug:          "hall-a",
			SessionCookieName: "session",
			SessionCookie:     "test-session",
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

func GetSeatingConfig() SeatingConfig {
	return SeatingConfig{
		BaseURL:           getEnv("SEATING_BASE_URL", "http://localhost:8080"),
		AreaSlug:          getEnv("SEATING_AREA_SLUG", ""),
		SessionCookieName: getEnv("SEATING_SESSION_COOKIE_NAME", "session"),
		SessionCookie:     getEnv("SEATING_SESSION_COOKIE", ""),
	}
}

func GetLogConfig() LogConfig {
	return LogConfig{
		Level: getEnv("LOG_LEVEL", "info"),
	}
}

// ManagePath 回傳座位管理頁面的路徑
func (c SeatingConfig) ManagePath() string {
	return "/seating/areas/" + url.PathEscape(c.AreaSlug) + "/manage_seats"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
