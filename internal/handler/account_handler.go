package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/plannerpad/internal/service"
)

// ShowSignupPage 渲染注册页面
func (a *API) ShowSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"title":   "注册",
		"flashes": takeFlashes(c),
	})
}

// Signup 处理注册请求；用户名冲突时带提示跳回注册页
func (a *API) Signup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if _, err := a.accounts.Register(username, password); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			addFlash(c, "danger", "用户名已存在，请换一个")
		case errors.Is(err, service.ErrBlankCredentials):
			addFlash(c, "danger", "用户名和密码不能为空")
		default:
			addFlash(c, "danger", "注册失败，请稍后重试")
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	addFlash(c, "success", "账号创建成功，请登录")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":   "登录",
		"flashes": takeFlashes(c),
	})
}

// Login 校验用户名密码并写入会话
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.accounts.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"title":   "登录",
				"flashes": []flashMessage{{Level: "danger", Text: "用户名或密码错误"}},
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title":   "登录",
			"flashes": []flashMessage{{Level: "danger", Text: "登录失败，请稍后重试"}},
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title":   "登录",
			"flashes": []flashMessage{{Level: "danger", Text: "会话保存失败"}},
		})
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

// Logout 清空会话并回到登录页
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	addFlash(c, "success", "你已退出登录")
	c.Redirect(http.StatusFound, "/login")
}

// AuthRequired 是一个简单的认证中间件：未登录请求一律跳转登录页，不触碰任何数据
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			addFlash(c, "warning", "请先登录再使用你的计划表")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
