package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型，邮箱为登录标识.
type User struct {
	ID    uint   `gorm:"primaryKey"                  json:"id"`
	Email string `gorm:"size:255;uniqueIndex"        json:"email"`
	// PasswordHash 存储 bcrypt 哈希，永不出现在响应中
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	DisplayName  string `gorm:"size:128"          json:"display_name,omitempty"`
	// LastLoginAt 最近一次成功登录时间
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	// 软删除与审计
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
