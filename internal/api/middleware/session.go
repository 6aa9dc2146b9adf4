package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/pkg/response"
)

// SessionCookie holds the signed session token.
const SessionCookie = "blog_session"

// CurrentUser resolves the session cookie to a User and stores it in the
// request context. A missing or bad cookie just means anonymous; handlers
// decide what anonymity means for them.
func CurrentUser(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			if user, err := auth.VerifyToken(c.Request.Context(), token); err == nil {
				c.Set(response.CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(c *gin.Context) *model.User {
	v, ok := c.Get(response.CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func SetSession(c *gin.Context, token string, maxAgeSeconds int) {
	c.SetCookie(SessionCookie, token, maxAgeSeconds, "/", "", false, true)
}

func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
