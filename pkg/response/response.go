package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/miniblog/pkg/logger"
)

// CurrentUserKey is set by the session middleware; HTML injects it into
// every template context so layouts can render the signed-in state.
const CurrentUserKey = "current_user"

// HTML renders a template with the shared context keys merged in.
func HTML(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data[CurrentUserKey]; !ok {
		if u, exists := c.Get(CurrentUserKey); exists {
			data[CurrentUserKey] = u
		}
	}
	c.HTML(status, tmpl, data)
}

func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, "404.html", gin.H{})
}

func ServerError(c *gin.Context, err error) {
	logger.L().Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	HTML(c, http.StatusInternalServerError, "500.html", gin.H{})
}

func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
