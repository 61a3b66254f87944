package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"github.com/plannerpad/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct{}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	engine := gin.New()
	engine.HTMLRender = &stubHTMLRender{}
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("plannerpad_session", store))

	api := NewAPI(gdb)
	engine.GET("/", api.ShowSignupPage)
	engine.POST("/", api.Signup)
	engine.GET("/login", api.ShowLoginPage)
	engine.POST("/login", api.Login)
	engine.POST("/logout", api.Logout)

	auth := engine.Group("")
	auth.Use(AuthRequired())
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

	return engine, gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// testClient 在多个请求之间携带会话 cookie
type testClient struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, engine *gin.Engine) *testClient {
	return &testClient{t: t, engine: engine, cookies: map[string]*http.Cookie{}}
}

func (tc *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}

	rr := httptest.NewRecorder()
	tc.engine.ServeHTTP(rr, req)

	for _, ck := range rr.Result().Cookies() {
		tc.cookies[ck.Name] = ck
	}
	return rr
}

func (tc *testClient) signupAndLogin(username, password string) {
	tc.t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	if rr := tc.do(http.MethodPost, "/", form); rr.Code != http.StatusFound {
		tc.t.Fatalf("signup failed with status %d", rr.Code)
	}
	if rr := tc.do(http.MethodPost, "/login", form); rr.Code != http.StatusFound {
		tc.t.Fatalf("login failed with status %d", rr.Code)
	}
}
