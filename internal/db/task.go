package db

import "gorm.io/gorm"

// Task 定义了任务模型
// 同一条任务只会属于三种网格之一：分类清单、星期列表或小时时间表
// CategoryPosition 是分类清单内的位置（1..8），DayPosition 是星期列表内的位置（1..7），
// 两者刻意拆成独立字段，避免一个 slot 字段承载两种含义
type Task struct {
	gorm.Model
	CalendarID       uint  `gorm:"index"`
	CategoryID       *uint `gorm:"index"`
	Name             string
	AssignedDay      string `gorm:"index"`
	CategoryPosition int
	DayPosition      int
	TimeSlot         string
}
