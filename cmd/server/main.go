package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/config"
	"github.com/xdiner/internal/db"
	"github.com/xdiner/internal/handler"
	"github.com/xdiner/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库并写入种子内容
	if err := db.Init(cfg.DatabaseDSN); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg.ImageAPIKey)
	if cfg.ImageAPIBaseURL != "" {
		api.Images().SetBaseURL(cfg.ImageAPIBaseURL)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
