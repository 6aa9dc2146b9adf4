package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/miniblog/config"
	"github.com/d60-Lab/miniblog/internal/api/handler"
	"github.com/d60-Lab/miniblog/internal/api/router"
	"github.com/d60-Lab/miniblog/internal/repository"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/internal/storage"
	"github.com/d60-Lab/miniblog/pkg/database"
	"github.com/d60-Lab/miniblog/pkg/logger"
	"github.com/d60-Lab/miniblog/pkg/ratelimit"
	"github.com/d60-Lab/miniblog/pkg/telemetry"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Obs.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Obs.SentryDSN, Environment: cfg.Env}); err != nil {
			panic(err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if cfg.Obs.OTLPEndpoint != "" {
		shutdown := must(telemetry.InitTracing(ctx, cfg.Obs.OTLPEndpoint, "miniblog"))
		defer func() { _ = shutdown(context.Background()) }()
	}

	db := must(database.InitDB(cfg))
	media := must(storage.NewMediaStore(cfg.Media.Root))

	var limiter ratelimit.Limiter
	if cfg.Obs.RateLimitRPM > 0 {
		if cfg.Cache.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.Obs.RateLimitRPM)
		} else {
			limiter = ratelimit.NewLocalLimiter(cfg.Obs.RateLimitRPM)
		}
	}

	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	postSvc := service.NewPostService(postRepo, groupRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	h := handler.New(postSvc, authSvc, groupRepo, media, cfg.Auth.SessionTTL)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(cfg, h, authSvc, limiter),
	}

	go func() {
		logger.L().Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("shutdown", zap.Error(err))
	}
}
