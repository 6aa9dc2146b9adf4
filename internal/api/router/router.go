package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/miniblog/config"
	"github.com/d60-Lab/miniblog/internal/api/handler"
	"github.com/d60-Lab/miniblog/internal/api/middleware"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/pkg/ratelimit"
	"github.com/d60-Lab/miniblog/pkg/response"
)

// New 组装路由与中间件链
func New(cfg *config.Config, h *handler.Handler, auth service.AuthService, limiter ratelimit.Limiter) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	if cfg.Obs.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Obs.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("miniblog"))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter))
	}
	r.Use(middleware.CurrentUser(auth))

	r.LoadHTMLGlob(cfg.Media.TemplatesGlob)
	r.Static("/media", cfg.Media.Root)
	r.NoRoute(response.NotFound)

	r.GET("/", h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:id/", h.PostDetail)
	r.GET("/create/", h.PostCreate)
	r.POST("/create/", h.PostCreate)
	r.GET("/posts/:id/edit/", h.PostEdit)
	r.POST("/posts/:id/edit/", h.PostEdit)

	r.GET("/auth/login/", h.Login)
	r.POST("/auth/login/", h.Login)
	r.GET("/auth/signup/", h.Signup)
	r.POST("/auth/signup/", h.Signup)
	r.GET("/auth/logout/", h.Logout)

	return r
}
