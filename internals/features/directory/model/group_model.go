package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GroupStatusActive   = "active"
	GroupStatusInactive = "inactive"
)

type GroupModel struct {
	GroupID       uuid.UUID `gorm:"column:group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"group_id"`
	GroupSchoolID uuid.UUID `gorm:"column:group_school_id;type:uuid;not null;index" json:"group_school_id"`
	GroupName     string    `gorm:"column:group_name;type:text;not null" json:"group_name"`

	// Minor-unit-free amount, same unit as payment price.
	GroupMonthlyPrice int64  `gorm:"column:group_monthly_price;not null;default:0;check:group_monthly_price >= 0" json:"group_monthly_price"`
	GroupStatus       string `gorm:"column:group_status;type:varchar(16);not null;default:'active'" json:"group_status"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt *time.Time     `gorm:"column:group_updated_at;autoUpdateTime" json:"group_updated_at,omitempty"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"group_deleted_at,omitempty"`
}

func (GroupModel) TableName() string { return "groups" }

func (g *GroupModel) IsActive() bool { return g.GroupStatus == GroupStatusActive }
