package service

import (
	"fmt"
	"time"

	"github.com/plannerpad/internal/db"
)

// CategoryColumn 是分类清单中的一列
// ID 为 0 表示这一列还没有持久化的分类（占位列）
type CategoryColumn struct {
	ID       uint
	Position int
	Name     string
	Tasks    []string
}

// WeekView 把一周的数据投影成模板渲染所需的三个只读视图
type WeekView struct {
	WeekStart  time.Time
	Days       []string
	TimeSlots  []string
	Categories []CategoryColumn
	TasksByDay map[string][]string
	TimeGrid   map[string]map[string]string
	Notes      string
}

// ComposeWeekView 读取指定周的分类、任务和时间表并构建视图。
// 当该周还没有任何分类时，渲染 7 个名为 "Category 1".."Category 7" 的占位列。
func (s *PlannerService) ComposeWeekView(calendar *db.Calendar) (*WeekView, error) {
	var categories []db.Category
	if err := s.db.Where("calendar_id = ?", calendar.ID).
		Order("position ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	var tasks []db.Task
	if err := s.db.Where("calendar_id = ?", calendar.ID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var schedules []db.Schedule
	if err := s.db.Where("calendar_id = ?", calendar.ID).Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	categoryByPosition := make(map[int]*db.Category, len(categories))
	for i := range categories {
		categoryByPosition[categories[i].Position] = &categories[i]
	}

	taskByID := make(map[uint]*db.Task, len(tasks))
	taskByCategoryCell := make(map[categoryTaskKey]string)
	for i := range tasks {
		task := &tasks[i]
		taskByID[task.ID] = task
		if task.CategoryID != nil && task.CategoryPosition > 0 {
			taskByCategoryCell[categoryTaskKey{*task.CategoryID, task.CategoryPosition}] = task.Name
		}
	}

	view := &WeekView{
		WeekStart:  calendar.WeekStart,
		Days:       Weekdays,
		TimeSlots:  TimeSlots,
		TasksByDay: make(map[string][]string, len(Weekdays)),
		TimeGrid:   make(map[string]map[string]string, len(Weekdays)),
		Notes:      calendar.Notes,
	}

	placeholder := len(categories) == 0
	view.Categories = make([]CategoryColumn, 0, MaxCategories)
	for slot := 1; slot <= MaxCategories; slot++ {
		column := CategoryColumn{Position: slot, Tasks: make([]string, MaxCategoryTasks)}

		if category := categoryByPosition[slot]; category != nil {
			column.ID = category.ID
			column.Name = category.Name
			for pos := 1; pos <= MaxCategoryTasks; pos++ {
				column.Tasks[pos-1] = taskByCategoryCell[categoryTaskKey{category.ID, pos}]
			}
		} else if placeholder {
			column.Name = fmt.Sprintf("Category %d", slot)
		}

		view.Categories = append(view.Categories, column)
	}

	for _, day := range Weekdays {
		view.TasksByDay[day] = make([]string, MaxDayTasks)
		view.TimeGrid[day] = make(map[string]string, len(TimeSlots))
	}

	for i := range tasks {
		task := &tasks[i]
		if task.DayPosition < 1 || task.DayPosition > MaxDayTasks {
			continue
		}
		if column, ok := view.TasksByDay[task.AssignedDay]; ok {
			column[task.DayPosition-1] = task.Name
		}
	}

	for i := range schedules {
		schedule := &schedules[i]
		row, ok := view.TimeGrid[schedule.DayOfWeek]
		if !ok {
			continue
		}
		if task := taskByID[schedule.TaskID]; task != nil {
			row[schedule.TimeSlot] = task.Name
		}
	}

	return view, nil
}
