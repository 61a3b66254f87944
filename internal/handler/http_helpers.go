package handler

import (
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// 会话键名：登录用户与当前浏览的周日期都保存在会话中，请求开始时读出
const (
	sessionKeyUserID       = "user_id"
	sessionKeyUsername     = "username"
	sessionKeyCalendarDate = "calendar_date"
)

// dateLayout 路由参数与会话中日期的统一格式
const dateLayout = "2006-01-02"

type flashMessage struct {
	Level string
	Text  string
}

// addFlash 追加一条一次性提示消息，level 取 success/warning/danger
// 会话写入失败时消息会丢失，错误记入 gin 的错误链便于日志排查
func addFlash(c *gin.Context, level, text string) {
	session := sessions.Default(c)
	session.AddFlash(level + "|" + text)
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

// takeFlashes 取出并清空当前会话中的提示消息
func takeFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	messages := make([]flashMessage, 0, len(raw))
	for _, entry := range raw {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		level, body, found := strings.Cut(text, "|")
		if !found {
			level, body = "success", text
		}
		messages = append(messages, flashMessage{Level: level, Text: body})
	}
	return messages
}

// currentUserID 返回会话中的登录用户，未登录时 ok 为 false
func currentUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	value := session.Get(sessionKeyUserID)
	if value == nil {
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// currentUsername 返回会话中的用户名，仅用于页面展示
func currentUsername(c *gin.Context) string {
	session := sessions.Default(c)
	if name, ok := session.Get(sessionKeyUsername).(string); ok {
		return name
	}
	return ""
}

// sessionCalendarDate 返回会话中记录的当前周日期，缺失或损坏时回退到今天
func sessionCalendarDate(c *gin.Context) time.Time {
	session := sessions.Default(c)
	if raw, ok := session.Get(sessionKeyCalendarDate).(string); ok {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}

// rememberCalendarDate 把当前浏览的周日期写回会话
func rememberCalendarDate(c *gin.Context, date time.Time) {
	session := sessions.Default(c)
	session.Set(sessionKeyCalendarDate, date.Format(dateLayout))
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}
