package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/miniblog/internal/form"
	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/pagination"
	"github.com/d60-Lab/miniblog/internal/repository"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAuthor     = errors.New("caller is not the post author")
)

// PostService 帖子读写服务
type PostService interface {
	ListAll(ctx context.Context, page string) (*pagination.Page[*model.Post], error)
	ListByGroup(ctx context.Context, slug, page string) (*model.Group, *pagination.Page[*model.Post], error)
	ListByAuthor(ctx context.Context, username, page string) (*model.User, *pagination.Page[*model.Post], error)
	// Detail returns the post plus the author's total post count.
	Detail(ctx context.Context, id uint) (*model.Post, int64, error)
	// Create persists a new post owned by author. pub_date is set here and
	// never changes afterwards. imagePath may be empty.
	Create(ctx context.Context, author *model.User, in *form.PostInput, imagePath string) (*model.Post, error)
	// Edit updates text/group (and image when imagePath is non-empty) in a
	// single write. Author and pub_date are never touched. Returns
	// ErrNotAuthor without mutating anything when caller does not own the post.
	Edit(ctx context.Context, caller *model.User, id uint, in *form.PostInput, imagePath string) (*model.Post, error)
	Groups(ctx context.Context) ([]*model.Group, error)
}

type postService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
	users  repository.UserRepository
}

func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, users repository.UserRepository) PostService {
	return &postService{posts: posts, groups: groups, users: users}
}

func (s *postService) ListAll(ctx context.Context, page string) (*pagination.Page[*model.Post], error) {
	return pagination.Paginate(ctx, s.posts.All(), page)
}

func (s *postService) ListByGroup(ctx context.Context, slug, page string) (*model.Group, *pagination.Page[*model.Post], error) {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}
	pg, err := pagination.Paginate(ctx, s.posts.ByGroup(group.ID), page)
	if err != nil {
		return nil, nil, err
	}
	return group, pg, nil
}

func (s *postService) ListByAuthor(ctx context.Context, username, page string) (*model.User, *pagination.Page[*model.Post], error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	pg, err := pagination.Paginate(ctx, s.posts.ByAuthor(author.ID), page)
	if err != nil {
		return nil, nil, err
	}
	return author, pg, nil
}

func (s *postService) Detail(ctx context.Context, id uint) (*model.Post, int64, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPostNotFound
		}
		return nil, 0, err
	}
	authorPosts, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, 0, err
	}
	return post, authorPosts, nil
}

func (s *postService) Create(ctx context.Context, author *model.User, in *form.PostInput, imagePath string) (*model.Post, error) {
	post := &model.Post{
		Text:     in.Text,
		AuthorID: author.ID,
		GroupID:  in.GroupID,
		Image:    imagePath,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Edit(ctx context.Context, caller *model.User, id uint, in *form.PostInput, imagePath string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if caller == nil || post.AuthorID != caller.ID {
		return nil, ErrNotAuthor
	}
	fields := map[string]any{
		"text":     in.Text,
		"group_id": in.GroupID,
	}
	if imagePath != "" {
		fields["image"] = imagePath
	}
	// exactly one write per validated submission
	if err := s.posts.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.posts.FindByID(ctx, id)
}

func (s *postService) Groups(ctx context.Context) ([]*model.Group, error) {
	return s.groups.List(ctx)
}
