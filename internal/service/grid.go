package service

// 固定的网格坐标枚举。三张网格（分类清单、星期列表、小时时间表）
// 都只在这些坐标上取值，表单解析与视图渲染共用同一份定义。

const (
	// MaxCategories 每个 Calendar 至多的分类数
	MaxCategories = 7
	// MaxCategoryTasks 每个分类清单内的任务槽位数
	MaxCategoryTasks = 8
	// MaxDayTasks 每个星期列内的任务槽位数
	MaxDayTasks = 7
)

// Weekdays 星期列的固定顺序
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimeSlots 小时时间表的固定行，按小时从早 7 点到晚 9 点
var TimeSlots = []string{
	"7 AM", "8 AM", "9 AM", "10 AM", "11 AM", "12 PM",
	"1 PM", "2 PM", "3 PM", "4 PM", "5 PM", "6 PM",
	"7 PM", "8 PM", "9 PM",
}

// CategoryTaskCell 定位分类清单中的一个格子
type CategoryTaskCell struct {
	CategorySlot int // 1..MaxCategories
	TaskSlot     int // 1..MaxCategoryTasks
}

// DayCell 定位星期列表中的一个格子
type DayCell struct {
	Day      string // Weekdays 之一
	Position int    // 1..MaxDayTasks
}

// TimeCell 定位小时时间表中的一个格子
type TimeCell struct {
	Day      string // Weekdays 之一
	TimeSlot string // TimeSlots 之一
}

// CategoryGridInput 是分类编辑表单解析后的类型化输入
// Categories 按槽位给出提交的分类名，Tasks 按格子给出提交的任务名；
// 值为空串表示该格子被清空
type CategoryGridInput struct {
	Categories map[int]string
	Tasks      map[CategoryTaskCell]string
}

// DayGridInput 是星期分配表单解析后的类型化输入
type DayGridInput struct {
	Cells map[DayCell]string
}

// TimeGridInput 是小时时间表表单解析后的类型化输入
type TimeGridInput struct {
	Cells map[TimeCell]string
}
