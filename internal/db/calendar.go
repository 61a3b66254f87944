package db

import (
	"time"

	"gorm.io/gorm"
)

// Calendar 定义了单周计划表模型
// 每个用户按周各持有一份，WeekStart 统一归一化到周一零点（UTC）
// Notes 保存本周备注的 Markdown 原文，渲染在页面侧栏
type Calendar struct {
	gorm.Model
	UserID    uint      `gorm:"index;index:idx_calendar_user_week,unique"`
	WeekStart time.Time `gorm:"index:idx_calendar_user_week,unique"`
	Notes     string
}
