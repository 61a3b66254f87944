package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/plannerpad/internal/db"
	"gorm.io/gorm"
)

// ErrCalendarNotFound 在指定周的计划表不存在时返回
var ErrCalendarNotFound = errors.New("calendar not found")

// CalendarService 负责周计划表的查找、惰性创建与周间导航

type CalendarService struct {
	db *gorm.DB
}

// NewCalendarService 构造 CalendarService
func NewCalendarService(gdb *gorm.DB) *CalendarService {
	return &CalendarService{db: gdb}
}

// WeekStart 把任意日期归一化到所属周的周一零点（UTC）
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// EnsureWeek 返回用户在指定日期所属周的计划表，不存在则创建
func (s *CalendarService) EnsureWeek(userID uint, date time.Time) (*db.Calendar, error) {
	weekStart := WeekStart(date)

	var calendar db.Calendar
	err := s.db.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&calendar).Error
	if err == nil {
		return &calendar, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find calendar: %w", err)
	}

	calendar = db.Calendar{UserID: userID, WeekStart: weekStart}
	if err := s.db.Create(&calendar).Error; err != nil {
		return nil, fmt.Errorf("create calendar: %w", err)
	}

	return &calendar, nil
}

// GetWeek 返回已存在的周计划表，不存在时返回 ErrCalendarNotFound
func (s *CalendarService) GetWeek(userID uint, date time.Time) (*db.Calendar, error) {
	weekStart := WeekStart(date)

	var calendar db.Calendar
	if err := s.db.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&calendar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, fmt.Errorf("find calendar: %w", err)
	}

	return &calendar, nil
}

// UpdateNotes 保存周备注的 Markdown 原文
func (s *CalendarService) UpdateNotes(userID uint, calendarID uint, notes string) error {
	result := s.db.Model(&db.Calendar{}).
		Where("id = ? AND user_id = ?", calendarID, userID).
		Update("notes", notes)
	if result.Error != nil {
		return fmt.Errorf("update notes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCalendarNotFound
	}
	return nil
}
