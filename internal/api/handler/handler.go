package handler

import (
	"time"

	"github.com/d60-Lab/miniblog/internal/repository"
	"github.com/d60-Lab/miniblog/internal/service"
	"github.com/d60-Lab/miniblog/internal/storage"
)

// Handler 页面处理器集合
type Handler struct {
	posts      service.PostService
	auth       service.AuthService
	groups     repository.GroupRepository
	media      *storage.MediaStore
	sessionTTL time.Duration
}

func New(posts service.PostService, auth service.AuthService, groups repository.GroupRepository, media *storage.MediaStore, sessionTTL time.Duration) *Handler {
	return &Handler{posts: posts, auth: auth, groups: groups, media: media, sessionTTL: sessionTTL}
}
