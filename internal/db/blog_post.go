package db

import "gorm.io/gorm"

// BlogPost 表示一篇博客文章，正文为 Markdown。
type BlogPost struct {
	gorm.Model
	Title   string `gorm:"size:200;not null"`
	Date    string `gorm:"size:20;not null"`
	Content string `gorm:"type:text"`
	Image   string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (BlogPost) TableName() string {
	return "blog_posts"
}
