package db

import "gorm.io/gorm"

// SiteSetting 存储站点品牌与 SEO 配置，表中始终只有一行。
type SiteSetting struct {
	gorm.Model
	Name           string `gorm:"size:100;not null"`
	Tagline        string `gorm:"size:200"`
	PrimaryColor   string `gorm:"size:20;not null"`
	Theme          string `gorm:"size:20;not null"`
	Font           string `gorm:"size:20;not null"`
	SEOTitle       string `gorm:"size:200"`
	SEODescription string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

// SiteSettingID 是单例配置行的固定主键。
const SiteSettingID uint = 1
