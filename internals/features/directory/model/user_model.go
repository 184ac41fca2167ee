package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel backs the login directory. Session issuance is external; the
// row exists here so the superadmin seed has somewhere to live.
type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserName     string    `gorm:"column:user_name;type:varchar(64);not null;uniqueIndex" json:"user_name"`
	UserPassword string    `gorm:"column:user_password;type:text;not null" json:"-"` // bcrypt hash
	UserRole     string    `gorm:"column:user_role;type:varchar(24);not null" json:"user_role"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
