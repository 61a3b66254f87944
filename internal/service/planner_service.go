package service

import (
	"fmt"
	"strings"

	"github.com/plannerpad/internal/db"
	"gorm.io/gorm"
)

// PlannerService 负责三张网格的对账逻辑：
// 按提交值与现有行的有无决定创建、更新或删除，
// 每次请求的全部改动在同一事务内提交，失败整体回滚。

type PlannerService struct {
	db *gorm.DB
}

// NewPlannerService 构造 PlannerService
func NewPlannerService(gdb *gorm.DB) *PlannerService {
	return &PlannerService{db: gdb}
}

type categoryTaskKey struct {
	categoryID uint
	position   int
}

// ReconcileCategoryGrid 对账分类清单：
// 分类按槽位 1..7 更新或创建（超出上限的名字静默丢弃），
// 任务按 (分类槽位, 任务槽位) 更新、创建或在提交空值时删除。
func (s *PlannerService) ReconcileCategoryGrid(userID, calendarID uint, input CategoryGridInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var categories []db.Category
		if err := tx.Where("calendar_id = ?", calendarID).
			Order("position ASC").Find(&categories).Error; err != nil {
			return fmt.Errorf("load categories: %w", err)
		}

		byPosition := make(map[int]*db.Category, len(categories))
		for i := range categories {
			byPosition[categories[i].Position] = &categories[i]
		}
		count := len(categories)

		for slot := 1; slot <= MaxCategories; slot++ {
			name := strings.TrimSpace(input.Categories[slot])
			if name == "" {
				continue
			}

			if existing := byPosition[slot]; existing != nil {
				if existing.Name != name {
					existing.Name = name
					if err := tx.Save(existing).Error; err != nil {
						return fmt.Errorf("update category: %w", err)
					}
				}
				continue
			}

			if count >= MaxCategories {
				continue
			}

			created := db.Category{UserID: userID, CalendarID: calendarID, Position: slot, Name: name}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("create category: %w", err)
			}
			byPosition[slot] = &created
			count++
		}

		var tasks []db.Task
		if err := tx.Where("calendar_id = ? AND category_id IS NOT NULL", calendarID).
			Find(&tasks).Error; err != nil {
			return fmt.Errorf("load category tasks: %w", err)
		}

		taskByCell := make(map[categoryTaskKey]*db.Task, len(tasks))
		for i := range tasks {
			if tasks[i].CategoryID == nil {
				continue
			}
			taskByCell[categoryTaskKey{*tasks[i].CategoryID, tasks[i].CategoryPosition}] = &tasks[i]
		}

		for slot := 1; slot <= MaxCategories; slot++ {
			category := byPosition[slot]
			if category == nil {
				// 该列没有分类，提交的任务值无从挂靠
				continue
			}

			for pos := 1; pos <= MaxCategoryTasks; pos++ {
				value := strings.TrimSpace(input.Tasks[CategoryTaskCell{CategorySlot: slot, TaskSlot: pos}])
				existing := taskByCell[categoryTaskKey{category.ID, pos}]

				switch {
				case value == "" && existing != nil:
					if err := tx.Delete(&db.Task{}, existing.ID).Error; err != nil {
						return fmt.Errorf("delete task: %w", err)
					}
				case value != "" && existing != nil:
					if existing.Name != value {
						existing.Name = value
						if err := tx.Save(existing).Error; err != nil {
							return fmt.Errorf("update task: %w", err)
						}
					}
				case value != "" && existing == nil:
					categoryID := category.ID
					task := db.Task{
						CalendarID:       calendarID,
						CategoryID:       &categoryID,
						Name:             value,
						CategoryPosition: pos,
					}
					if err := tx.Create(&task).Error; err != nil {
						return fmt.Errorf("create task: %w", err)
					}
				}
			}
		}

		return nil
	})
}

// ReconcileDayGrid 对账星期列表。
// 查找只按 (calendar, day, position) 进行，从不按任务名匹配。
func (s *PlannerService) ReconcileDayGrid(userID, calendarID uint, input DayGridInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tasks []db.Task
		if err := tx.Where("calendar_id = ? AND day_position > 0", calendarID).
			Find(&tasks).Error; err != nil {
			return fmt.Errorf("load day tasks: %w", err)
		}

		byCell := make(map[DayCell]*db.Task, len(tasks))
		for i := range tasks {
			byCell[DayCell{Day: tasks[i].AssignedDay, Position: tasks[i].DayPosition}] = &tasks[i]
		}

		for _, day := range Weekdays {
			for pos := 1; pos <= MaxDayTasks; pos++ {
				cell := DayCell{Day: day, Position: pos}
				value := strings.TrimSpace(input.Cells[cell])
				existing := byCell[cell]

				switch {
				case value == "" && existing != nil:
					if err := tx.Delete(&db.Task{}, existing.ID).Error; err != nil {
						return fmt.Errorf("delete day task: %w", err)
					}
				case value != "" && existing != nil:
					if existing.Name != value {
						existing.Name = value
						if err := tx.Save(existing).Error; err != nil {
							return fmt.Errorf("update day task: %w", err)
						}
					}
				case value != "" && existing == nil:
					task := db.Task{
						CalendarID:  calendarID,
						Name:        value,
						AssignedDay: day,
						DayPosition: pos,
					}
					if err := tx.Create(&task).Error; err != nil {
						return fmt.Errorf("create day task: %w", err)
					}
				}
			}
		}

		return nil
	})
}

// ReconcileTimeGrid 对账小时时间表。
// 清空一个格子时，关联行和它指向的任务一起删除。
func (s *PlannerService) ReconcileTimeGrid(userID, calendarID uint, input TimeGridInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var schedules []db.Schedule
		if err := tx.Where("calendar_id = ?", calendarID).Find(&schedules).Error; err != nil {
			return fmt.Errorf("load schedules: %w", err)
		}

		byCell := make(map[TimeCell]*db.Schedule, len(schedules))
		for i := range schedules {
			byCell[TimeCell{Day: schedules[i].DayOfWeek, TimeSlot: schedules[i].TimeSlot}] = &schedules[i]
		}

		for _, day := range Weekdays {
			for _, slot := range TimeSlots {
				cell := TimeCell{Day: day, TimeSlot: slot}
				value := strings.TrimSpace(input.Cells[cell])
				existing := byCell[cell]

				switch {
				case value == "" && existing != nil:
					// 唯一索引 (calendar, day, time_slot) 不含 deleted_at，
					// 软删除的墓碑行会挡住同一格子的重建，这里必须物理删除
					if err := tx.Unscoped().Delete(&db.Schedule{}, existing.ID).Error; err != nil {
						return fmt.Errorf("delete schedule: %w", err)
					}
					if err := tx.Unscoped().Delete(&db.Task{}, existing.TaskID).Error; err != nil {
						return fmt.Errorf("delete scheduled task: %w", err)
					}
				case value != "" && existing != nil:
					if err := tx.Model(&db.Task{}).
						Where("id = ?", existing.TaskID).
						Update("name", value).Error; err != nil {
						return fmt.Errorf("update scheduled task: %w", err)
					}
				case value != "" && existing == nil:
					task := db.Task{
						CalendarID:  calendarID,
						Name:        value,
						AssignedDay: day,
						TimeSlot:    slot,
					}
					if err := tx.Create(&task).Error; err != nil {
						return fmt.Errorf("create scheduled task: %w", err)
					}
					schedule := db.Schedule{
						UserID:     userID,
						CalendarID: calendarID,
						TaskID:     task.ID,
						DayOfWeek:  day,
						TimeSlot:   slot,
					}
					if err := tx.Create(&schedule).Error; err != nil {
						return fmt.Errorf("create schedule: %w", err)
					}
				}
			}
		}

		return nil
	})
}
