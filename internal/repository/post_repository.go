package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/miniblog/internal/model"
	"github.com/d60-Lab/miniblog/internal/pagination"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// Update writes the given columns only; callers never pass pub_date
	// or author_id, which keeps both immutable after creation.
	Update(ctx context.Context, id uint, fields map[string]any) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	All() pagination.Source[*model.Post]
	ByGroup(groupID uint) pagination.Source[*model.Post]
	ByAuthor(authorID string) pagination.Source[*model.Post]
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.PubDate.IsZero() {
		post.PubDate = time.Now()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Post{ID: id}).Updates(fields).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) All() pagination.Source[*model.Post] {
	return &postSource{db: r.db}
}

func (r *postRepository) ByGroup(groupID uint) pagination.Source[*model.Post] {
	return &postSource{db: r.db, cond: "group_id = ?", args: []any{groupID}}
}

func (r *postRepository) ByAuthor(authorID string) pagination.Source[*model.Post] {
	return &postSource{db: r.db, cond: "author_id = ?", args: []any{authorID}}
}

// postSource 分页数据源：newest-first，平局按 id 倒序
type postSource struct {
	db   *gorm.DB
	cond string
	args []any
}

func (s *postSource) scoped(tx *gorm.DB) *gorm.DB {
	if s.cond != "" {
		tx = tx.Where(s.cond, s.args...)
	}
	return tx
}

func (s *postSource) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := s.scoped(s.db.WithContext(ctx).Model(&model.Post{})).Count(&cnt).Error
	return cnt, err
}

func (s *postSource) Slice(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := s.scoped(s.db.WithContext(ctx)).
		Preload("Author").Preload("Group").
		Order("pub_date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
