package model

import (
	"time"
	"unicode/utf8"
)

// Post 内容主体。pub_date 与 author 创建后不可变；group 可空，
// 分组删除时置空而不是级联删除帖子。
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	PubDate   time.Time `gorm:"index:idx_post_pub;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	GroupID   *uint     `gorm:"index:idx_post_group"`
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Image     string    `gorm:"type:varchar(255)"` // relative media path, e.g. posts/<name>
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }

// Preview 帖子摘要（前 15 个字符）
func (p *Post) Preview() string {
	const n = 15
	if utf8.RuneCountInString(p.Text) <= n {
		return p.Text
	}
	return string([]rune(p.Text)[:n])
}

func (p *Post) String() string { return p.Preview() }
