package model

import "time"

// Group 帖子话题分组；slug 全局唯一
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(200);uniqueIndex:ux_group_slug;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Group) TableName() string { return "groups" }

func (g *Group) String() string { return g.Title }
