package db

import "gorm.io/gorm"

// Category 定义了任务分类模型
// Position 固定取值 1..7，每个 Calendar 至多 7 个分类
type Category struct {
	gorm.Model
	UserID     uint `gorm:"index"`
	CalendarID uint `gorm:"index;index:idx_category_calendar_position,unique"`
	Position   int  `gorm:"index:idx_category_calendar_position,unique"`
	Name       string
	Tasks      []Task `gorm:"foreignKey:CategoryID"`
}
