package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/miniblog/internal/model"
)

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	FindByID(ctx context.Context, id uint) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]*model.Group, error)
	Delete(ctx context.Context, id uint) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) FindByID(ctx context.Context, id uint) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*model.Group, error) {
	var res []*model.Group
	err := r.db.WithContext(ctx).Order("title").Find(&res).Error
	return res, err
}

// Delete 删除分组；已关联的帖子 group_id 置空，帖子保留
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, id).Error
	})
}
