package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseDSN     string
	SessionSecret   string
	GinMode         string
	ImageAPIKey     string
	ImageAPIBaseURL string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	// 默认使用内存库：站点内容只存活于进程生命周期内
	databaseDSN := strings.TrimSpace(os.Getenv("DATABASE_DSN"))

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "xdiner-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	imageAPIKey := strings.TrimSpace(os.Getenv("IMAGE_API_KEY"))
	imageAPIBaseURL := strings.TrimSpace(os.Getenv("IMAGE_API_BASE_URL"))

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		DatabaseDSN:     databaseDSN,
		SessionSecret:   sessionSecret,
		GinMode:         ginMode,
		ImageAPIKey:     imageAPIKey,
		ImageAPIBaseURL: imageAPIBaseURL,
	}
}
