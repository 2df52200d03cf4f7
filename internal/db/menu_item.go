package db

import "gorm.io/gorm"

// MenuItem 表示一道菜品，ID 在菜单内唯一且创建后不变。
type MenuItem struct {
	gorm.Model
	Name        string  `gorm:"size:100;not null"`
	Price       float64 `gorm:"not null"`
	Category    string  `gorm:"size:50;not null;index"`
	Description string  `gorm:"type:text"`
	Image       string  `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (MenuItem) TableName() string {
	return "menu_items"
}

// 菜单分类，对应前台的分类筛选；保留扩展空间。
const (
	CategoryMains      = "Mains"
	CategorySides      = "Sides"
	CategoryAppetizers = "Appetizers"
	CategoryDrinks     = "Drinks"
)
