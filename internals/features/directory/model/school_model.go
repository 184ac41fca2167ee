package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolModel struct {
	SchoolID    uuid.UUID `gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_id"`
	SchoolName  string    `gorm:"column:school_name;type:text;not null" json:"school_name"`
	SchoolPhone *string   `gorm:"column:school_phone;type:varchar(20)" json:"school_phone,omitempty"`

	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt *time.Time     `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at,omitempty"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }

// RoomModel exists so the bootstrap seed can guarantee one default room
// per school; room CRUD itself is handled elsewhere.
type RoomModel struct {
	RoomID       uuid.UUID `gorm:"column:room_id;type:uuid;default:gen_random_uuid();primaryKey" json:"room_id"`
	RoomSchoolID uuid.UUID `gorm:"column:room_school_id;type:uuid;not null;index" json:"room_school_id"`
	RoomName     string    `gorm:"column:room_name;type:text;not null" json:"room_name"`

	RoomCreatedAt time.Time `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
}

func (RoomModel) TableName() string { return "rooms" }

// DayModel is the global day-of-week catalog referenced by schedules.
type DayModel struct {
	DayID   int16  `gorm:"column:day_id;primaryKey" json:"day_id"` // 1..7, Monday first
	DayName string `gorm:"column:day_name;type:varchar(16);not null;uniqueIndex" json:"day_name"`
}

func (DayModel) TableName() string { return "days" }
