package model

import "time"

// User 作者账号（仅用户名/凭证，会话由中间件负责）
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(150);uniqueIndex:ux_user_username;not null"`
	Email     string `gorm:"type:varchar(255)"`
	Password  string `gorm:"type:varchar(100);not null"` // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
