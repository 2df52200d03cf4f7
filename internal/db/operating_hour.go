package db

import "gorm.io/gorm"

// OperatingHour 表示一条营业时间，Position 决定展示顺序。
type OperatingHour struct {
	gorm.Model
	Position  int    `gorm:"not null;index"`
	DayLabel  string `gorm:"size:50;not null"`
	TimeLabel string `gorm:"size:50;not null"`
}

// TableName 自定义表名以保持命名一致。
func (OperatingHour) TableName() string {
	return "operating_hours"
}
