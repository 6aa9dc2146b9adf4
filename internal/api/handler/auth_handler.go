package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/miniblog/internal/api/middleware"
	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/pkg/response"
)

// Login 登录页 + 提交
func (h *Handler) Login(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		response.HTML(c, http.StatusOK, "login.html", gin.H{})
		return
	}
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.HTML(c, http.StatusOK, "login.html", gin.H{
				"error":    "Invalid username or password.",
				"username": username,
			})
			return
		}
		response.ServerError(c, err)
		return
	}
	if !h.startSession(c, user) {
		return
	}
	response.Redirect(c, "/")
}

// Signup 注册页 + 提交；成功后直接登录
func (h *Handler) Signup(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		response.HTML(c, http.StatusOK, "signup.html", gin.H{})
		return
	}
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		response.HTML(c, http.StatusOK, "signup.html", gin.H{
			"error":    "Username and password are required.",
			"username": username,
			"email":    email,
		})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), username, email, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.HTML(c, http.StatusOK, "signup.html", gin.H{
				"error":    "That username is already taken.",
				"username": username,
				"email":    email,
			})
			return
		}
		response.ServerError(c, err)
		return
	}
	if !h.startSession(c, user) {
		return
	}
	response.Redirect(c, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	response.Redirect(c, "/")
}

func (h *Handler) startSession(c *gin.Context, user *model.User) bool {
	token, err := h.auth.IssueToken(user)
	if err != nil {
		response.ServerError(c, err)
		return false
	}
	middleware.SetSession(c, token, int(h.sessionTTL.Seconds()))
	return true
}
