package db

import (
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// DefaultDSN 使用共享缓存的内存库，站点内容只存活于进程生命周期内。
const DefaultDSN = "file::memory:?cache=shared"

// Init 初始化数据库连接、执行自动迁移并写入种子内容。
// dsn 为空时回退到内存库默认值。
func Init(dsn string) error {
	path := strings.TrimSpace(dsn)
	if path == "" {
		path = DefaultDSN
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// 自动迁移模式，为核心模型创建表
	if err = DB.AutoMigrate(
		&SiteSetting{},
		&OperatingHour{},
		&MenuItem{},
		&Reservation{},
		&Inquiry{},
		&BlogPost{},
	); err != nil {
		return err
	}

	return Seed(DB)
}
