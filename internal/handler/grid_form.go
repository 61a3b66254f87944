package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plannerpad/internal/service"
)

// 表单字段名是固定模式：category{n}、action{j}_category{n}、{day}_task{i}、
// schedule_{hourlabel}_{day}。模板渲染和表单解析共用这一组构造函数，
// 解析只遍历固定坐标枚举，不会按请求内容拼键名探测。

// CategoryFieldName 分类名输入框的字段名
func CategoryFieldName(slot int) string {
	return fmt.Sprintf("category%d", slot)
}

// CategoryTaskFieldName 分类清单任务格的字段名
func CategoryTaskFieldName(taskSlot, categorySlot int) string {
	return fmt.Sprintf("action%d_category%d", taskSlot, categorySlot)
}

// DayTaskFieldName 星期列表任务格的字段名
func DayTaskFieldName(day string, position int) string {
	return fmt.Sprintf("%s_task%d", strings.ToLower(day), position)
}

// ScheduleFieldName 小时时间表格子的字段名，小时标签去空格并转小写
func ScheduleFieldName(timeSlot, day string) string {
	compact := strings.ToLower(strings.ReplaceAll(timeSlot, " ", ""))
	return fmt.Sprintf("schedule_%s_%s", compact, strings.ToLower(day))
}

func parseCategoryGridForm(c *gin.Context) service.CategoryGridInput {
	input := service.CategoryGridInput{
		Categories: make(map[int]string, service.MaxCategories),
		Tasks:      make(map[service.CategoryTaskCell]string, service.MaxCategories*service.MaxCategoryTasks),
	}

	for slot := 1; slot <= service.MaxCategories; slot++ {
		input.Categories[slot] = c.PostForm(CategoryFieldName(slot))
		for taskSlot := 1; taskSlot <= service.MaxCategoryTasks; taskSlot++ {
			cell := service.CategoryTaskCell{CategorySlot: slot, TaskSlot: taskSlot}
			input.Tasks[cell] = c.PostForm(CategoryTaskFieldName(taskSlot, slot))
		}
	}

	return input
}

func parseDayGridForm(c *gin.Context) service.DayGridInput {
	input := service.DayGridInput{
		Cells: make(map[service.DayCell]string, len(service.Weekdays)*service.MaxDayTasks),
	}

	for _, day := range service.Weekdays {
		for position := 1; position <= service.MaxDayTasks; position++ {
			cell := service.DayCell{Day: day, Position: position}
			input.Cells[cell] = c.PostForm(DayTaskFieldName(day, position))
		}
	}

	return input
}

func parseTimeGridForm(c *gin.Context) service.TimeGridInput {
	input := service.TimeGridInput{
		Cells: make(map[service.TimeCell]string, len(service.Weekdays)*len(service.TimeSlots)),
	}

	for _, day := range service.Weekdays {
		for _, slot := range service.TimeSlots {
			cell := service.TimeCell{Day: day, TimeSlot: slot}
			input.Cells[cell] = c.PostForm(ScheduleFieldName(slot, day))
		}
	}

	return input
}
