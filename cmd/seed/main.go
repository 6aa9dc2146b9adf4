package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/d60-Lab/miniblog/config"
	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/repository"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/pkg/database"
	"github.com/d60-Lab/miniblog/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// 本地联调用的演示数据：两个用户、两个分组、N 条帖子
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	N := 25
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	alice := must(authSvc.Signup(ctx, "alice", "alice@example.com", "password1"))
	bob := must(authSvc.Signup(ctx, "bob", "bob@example.com", "password2"))

	groups := []*model.Group{
		{Title: "General", Slug: "general", Description: "Anything goes"},
		{Title: "Travel", Slug: "travel", Description: "Trip reports"},
	}
	for _, g := range groups {
		if err := groupRepo.Create(ctx, g); err != nil {
			panic(err)
		}
	}

	authors := []*model.User{alice, bob}
	base := time.Now().Add(-time.Duration(N) * time.Minute)
	for i := 0; i < N; i++ {
		post := &model.Post{
			Text:     fmt.Sprintf("Seed post #%d", i+1),
			AuthorID: authors[i%len(authors)].ID,
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}
		if i%3 != 0 {
			post.GroupID = &groups[i%len(groups)].ID
		}
		if err := postRepo.Create(ctx, post); err != nil {
			panic(err)
		}
	}
	fmt.Printf("seeded %d posts, %d groups, %d users\n", N, len(groups), len(authors))
}
