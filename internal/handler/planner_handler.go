package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/plannerpad/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	markdownhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(markdownhtml.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown 把周备注的 Markdown 渲染为净化后的 HTML
func renderMarkdown(source string) template.HTML {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// requestDate 确定本次请求渲染哪一周：优先取路由参数，缺失时回退会话中的日期
func requestDate(c *gin.Context) time.Time {
	if raw := c.Param("date"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			return parsed
		}
	}
	return sessionCalendarDate(c)
}

// ShowIndex 渲染指定周（或会话当前周）的计划表
func (a *API) ShowIndex(c *gin.Context) {
	userID, _ := currentUserID(c)

	calendar, err := a.calendars.EnsureWeek(userID, requestDate(c))
	if err != nil {
		addFlash(c, "danger", "计划表加载失败，请稍后重试")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	rememberCalendarDate(c, calendar.WeekStart)

	view, err := a.planner.ComposeWeekView(calendar)
	if err != nil {
		addFlash(c, "danger", "计划表加载失败，请稍后重试")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	weekStart := calendar.WeekStart
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":     "每周计划",
		"username":  currentUsername(c),
		"flashes":   takeFlashes(c),
		"view":      view,
		"notesHTML": renderMarkdown(view.Notes),
		"weekStart": weekStart.Format(dateLayout),
		"weekEnd":   weekStart.AddDate(0, 0, 6).Format(dateLayout),
	})
}

// currentCalendar 按会话中的周日期取出已存在的计划表，供写路由使用
func (a *API) currentCalendar(c *gin.Context, userID uint) (uint, bool) {
	calendar, err := a.calendars.GetWeek(userID, sessionCalendarDate(c))
	if err != nil {
		if errors.Is(err, service.ErrCalendarNotFound) {
			addFlash(c, "warning", "请先打开一周计划表再提交修改")
		} else {
			addFlash(c, "danger", "计划表加载失败，请稍后重试")
		}
		c.Redirect(http.StatusFound, "/index")
		return 0, false
	}
	return calendar.ID, true
}

// UpdateCategoriesAndTasks 处理分类清单表单
func (a *API) UpdateCategoriesAndTasks(c *gin.Context) {
	userID, _ := currentUserID(c)

	calendarID, ok := a.currentCalendar(c, userID)
	if !ok {
		return
	}

	if err := a.planner.ReconcileCategoryGrid(userID, calendarID, parseCategoryGridForm(c)); err != nil {
		addFlash(c, "danger", "保存失败，本次修改未生效，请重试")
		c.Redirect(http.StatusFound, "/index")
		return
	}

	addFlash(c, "success", "分类与任务已保存")
	c.Redirect(http.StatusFound, "/index")
}

// AssignTaskToDay 处理星期分配表单
func (a *API) AssignTaskToDay(c *gin.Context) {
	userID, _ := currentUserID(c)

	calendarID, ok := a.currentCalendar(c, userID)
	if !ok {
		return
	}

	if err := a.planner.ReconcileDayGrid(userID, calendarID, parseDayGridForm(c)); err != nil {
		addFlash(c, "danger", "保存失败，本次修改未生效，请重试")
		c.Redirect(http.StatusFound, "/index")
		return
	}

	addFlash(c, "success", "每日任务已保存")
	c.Redirect(http.StatusFound, "/index")
}

// ScheduleTaskTimeSlot 处理小时时间表表单
func (a *API) ScheduleTaskTimeSlot(c *gin.Context) {
	userID, _ := currentUserID(c)

	calendarID, ok := a.currentCalendar(c, userID)
	if !ok {
		return
	}

	if err := a.planner.ReconcileTimeGrid(userID, calendarID, parseTimeGridForm(c)); err != nil {
		addFlash(c, "danger", "保存失败，本次修改未生效，请重试")
		c.Redirect(http.StatusFound, "/index")
		return
	}

	addFlash(c, "success", "时间表已保存")
	c.Redirect(http.StatusFound, "/index")
}

// UpdateNotes 保存周备注
func (a *API) UpdateNotes(c *gin.Context) {
	userID, _ := currentUserID(c)

	calendarID, ok := a.currentCalendar(c, userID)
	if !ok {
		return
	}

	if err := a.calendars.UpdateNotes(userID, calendarID, c.PostForm("notes")); err != nil {
		addFlash(c, "danger", "保存失败，本次修改未生效，请重试")
		c.Redirect(http.StatusFound, "/index")
		return
	}

	addFlash(c, "success", "本周备注已保存")
	c.Redirect(http.StatusFound, "/index")
}

// PreviousCalendar 跳到上一周
func (a *API) PreviousCalendar(c *gin.Context) {
	a.shiftCalendar(c, -7)
}

// NextCalendar 跳到下一周
func (a *API) NextCalendar(c *gin.Context) {
	a.shiftCalendar(c, 7)
}

func (a *API) shiftCalendar(c *gin.Context, days int) {
	raw := c.Param("date")
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		addFlash(c, "warning", "日期格式不正确")
		c.Redirect(http.StatusFound, "/index")
		return
	}

	target := service.WeekStart(date).AddDate(0, 0, days)
	c.Redirect(http.StatusFound, "/index/"+target.Format(dateLayout))
}
