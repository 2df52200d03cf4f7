package db

import "gorm.io/gorm"

// Inquiry 表示一条前台留言，后台只读。
type Inquiry struct {
	gorm.Model
	Name    string `gorm:"size:100;not null"`
	Email   string `gorm:"size:200"`
	Subject string `gorm:"size:200;not null"`
	Message string `gorm:"type:text;not null"`
	Date    string `gorm:"size:10;not null"`
}

// TableName 自定义表名以保持命名一致。
func (Inquiry) TableName() string {
	return "inquiries"
}
