package db

import "gorm.io/gorm"

// Schedule 定义了小时时间表的关联模型
// (CalendarID, DayOfWeek, TimeSlot) 唯一，保证一个格子至多绑定一条任务
type Schedule struct {
	gorm.Model
	UserID     uint   `gorm:"index"`
	CalendarID uint   `gorm:"index;index:idx_schedule_calendar_cell,unique"`
	TaskID     uint   `gorm:"index"`
	Task       Task   `gorm:"constraint:OnDelete:CASCADE"`
	DayOfWeek  string `gorm:"index:idx_schedule_calendar_cell,unique"`
	TimeSlot   string `gorm:"index:idx_schedule_calendar_cell,unique"`
}
