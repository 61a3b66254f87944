package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/plannerpad/internal/db"
)

func TestCategoryGridRoundTrip(t *testing.T) {
	engine, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	client := newTestClient(t, engine)
	client.signupAndLogin("alice", "secret123")

	// 先打开一周计划表，使会话记住当前周
	if rr := client.do(http.MethodGet, "/index", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected index to render, got %d", rr.Code)
	}

	form := url.Values{}
	form.Set(CategoryFieldName(1), "Work")
	form.Set(CategoryTaskFieldName(1, 1), "Email")

	rr := client.do(http.MethodPost, "/update_categories_and_tasks", form)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/index" {
		t.Fatalf("unexpected response: %d %q", rr.Code, rr.Header().Get("Location"))
	}

	var category db.Category
	if err := gdb.Where("name = ?", "Work").First(&category).Error; err != nil {
		t.Fatalf("category not created: %v", err)
	}
	if category.Position != 1 {
		t.Fatalf("expected category at position 1, got %d", category.Position)
	}

	var task db.Task
	if err := gdb.Where("category_id = ? AND category_position = ?", category.ID, 1).First(&task).Error; err != nil {
		t.Fatalf("task not created: %v", err)
	}
	if task.Name != "Email" {
		t.Fatalf("unexpected task name %q", task.Name)
	}

	// 提交空值删除任务，分类名保留
	form.Set(CategoryTaskFieldName(1, 1), "")
	client.do(http.MethodPost, "/update_categories_and_tasks", form)

	var taskCount int64
	gdb.Model(&db.Task{}).Where("category_id = ?", category.ID).Count(&taskCount)
	if taskCount != 0 {
		t.Fatalf("expected task deleted, got %d rows", taskCount)
	}
	if err := gdb.Where("name = ?", "Work").First(&category).Error; err != nil {
		t.Fatalf("category should survive task deletion: %v", err)
	}
}

func TestDayGridRoundTrip(t *testing.T) {
	engine, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	client := newTestClient(t, engine)
	client.signupAndLogin("alice", "secret123")
	client.do(http.MethodGet, "/index", nil)

	form := url.Values{}
	form.Set(DayTaskFieldName("Monday", 1), "Standup")

	rr := client.do(http.MethodPost, "/assign_task_to_day", form)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}

	var task db.Task
	if err := gdb.Where("assigned_day = ? AND day_position = ?", "Monday", 1).First(&task).Error; err != nil {
		t.Fatalf("day task not created: %v", err)
	}
	if task.Name != "Standup" {
		t.Fatalf("unexpected task name %q", task.Name)
	}

	// 清空格子删除该行
	form.Set(DayTaskFieldName("Monday", 1), "")
	client.do(http.MethodPost, "/assign_task_to_day", form)

	var count int64
	gdb.Model(&db.Task{}).Where("day_position > 0").Count(&count)
	if count != 0 {
		t.Fatalf("expected day task deleted, got %d", count)
	}
}

func TestTimeGridIdempotentCreate(t *testing.T) {
	engine, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	client := newTestClient(t, engine)
	client.signupAndLogin("alice", "secret123")
	client.do(http.MethodGet, "/index", nil)

	form := url.Values{}
	form.Set(ScheduleFieldName("9 AM", "Monday"), "Sync")

	client.do(http.MethodPost, "/schedule_task_time_slot", form)

	var taskCount, scheduleCount int64
	gdb.Model(&db.Task{}).Count(&taskCount)
	gdb.Model(&db.Schedule{}).Count(&scheduleCount)
	if taskCount != 1 || scheduleCount != 1 {
		t.Fatalf("expected one task and one schedule, got %d/%d", taskCount, scheduleCount)
	}

	// 同值重复提交不新增行
	client.do(http.MethodPost, "/schedule_task_time_slot", form)
	gdb.Model(&db.Task{}).Count(&taskCount)
	gdb.Model(&db.Schedule{}).Count(&scheduleCount)
	if taskCount != 1 || scheduleCount != 1 {
		t.Fatalf("expected counts unchanged, got %d/%d", taskCount, scheduleCount)
	}

	// 清空格子时两行一起删除
	form.Set(ScheduleFieldName("9 AM", "Monday"), "")
	client.do(http.MethodPost, "/schedule_task_time_slot", form)
	gdb.Model(&db.Task{}).Count(&taskCount)
	gdb.Model(&db.Schedule{}).Count(&scheduleCount)
	if taskCount != 0 || scheduleCount != 0 {
		t.Fatalf("expected both rows deleted, got %d/%d", taskCount, scheduleCount)
	}
}

func TestCalendarNavigationRoundTrip(t *testing.T) {
	engine, _, cleanup := setupHandlerTest(t)
	defer cleanup()

	client := newTestClient(t, engine)
	client.signupAndLogin("alice", "secret123")

	rr := client.do(http.MethodGet, "/next_calendar/2024-01-01", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if location := rr.Header().Get("Location"); location != "/index/2024-01-08" {
		t.Fatalf("expected next week 2024-01-08, got %q", location)
	}

	rr = client.do(http.MethodGet, "/previous_calendar/2024-01-08", nil)
	if location := rr.Header().Get("Location"); location != "/index/2024-01-01" {
		t.Fatalf("expected previous week 2024-01-01, got %q", location)
	}
}

func TestWriteWithoutCalendarBouncesToIndex(t *testing.T) {
	engine, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	client := newTestClient(t, engine)
	client.signupAndLogin("alice", "secret123")

	// 未打开过任何一周，会话里没有可写的计划表
	form := url.Values{}
	form.Set(DayTaskFieldName("Monday", 1), "Standup")
	rr := client.do(http.MethodPost, "/assign_task_to_day", form)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/index" {
		t.Fatalf("expected bounce to /index, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	var count int64
	gdb.Model(&db.Task{}).Count(&count)
	if count != 0 {
		t.Fatalf("no data may be written without a calendar, got %d tasks", count)
	}
}

func TestUpdateNotes(t *testing.T) {
	engine, gdb, cleanup := setupHandlerTest(t)
	defer cleanup()

	client := newTestClient(t, engine)
	client.signupAndLogin("alice", "secret123")
	client.do(http.MethodGet, "/index", nil)

	form := url.Values{"notes": {"# 本周重点\n- 周三交周报"}}
	rr := client.do(http.MethodPost, "/update_notes", form)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}

	var calendar db.Calendar
	if err := gdb.First(&calendar).Error; err != nil {
		t.Fatalf("calendar missing: %v", err)
	}
	if calendar.Notes != "# 本周重点\n- 周三交周报" {
		t.Fatalf("unexpected notes %q", calendar.Notes)
	}
}
