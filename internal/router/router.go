package router

import (
	"html/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/plannerpad/internal/handler"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由。
// templateGlob 为空时使用默认模板目录，测试可传入相对自身的路径。
func SetupRouter(gdb *gorm.DB, sessionSecret, templateGlob string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("plannerpad_session", store))

	// 加载模板并注册自定义函数，字段名构造与表单解析共用同一组函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"catField":      handler.CategoryFieldName,
		"taskField":     handler.CategoryTaskFieldName,
		"dayField":      handler.DayTaskFieldName,
		"scheduleField": handler.ScheduleFieldName,
	})
	if templateGlob == "" {
		templateGlob = "web/template/*.html"
	}
	r.LoadHTMLGlob(templateGlob)

	// 静态文件服务
	r.Static("/static", "./web/static")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := handler.NewAPI(gdb)

	// 注册与登录
	r.GET("/", api.ShowSignupPage)
	r.POST("/", api.Signup)
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)

	// 需要认证的计划表路由
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/index", api.ShowIndex)
		auth.GET("/index/:date", api.ShowIndex)

		auth.POST("/update_categories_and_tasks", api.UpdateCategoriesAndTasks)
		auth.POST("/assign_task_to_day", api.AssignTaskToDay)
		auth.POST("/schedule_task_time_slot", api.ScheduleTaskTimeSlot)
		auth.POST("/update_notes", api.UpdateNotes)

		auth.GET("/previous_calendar/:date", api.PreviousCalendar)
		auth.GET("/next_calendar/:date", api.NextCalendar)
	}

	return r
}
