package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentGroupModel joins a student to a group. Its created_at doubles as
// the enrollment date: the student owes nothing for months before it.
type StudentGroupModel struct {
	StudentGroupID        uuid.UUID `gorm:"column:student_group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_group_id"`
	StudentGroupStudentID uuid.UUID `gorm:"column:student_group_student_id;type:uuid;not null;index:idx_student_group_pair" json:"student_group_student_id"`
	StudentGroupGroupID   uuid.UUID `gorm:"column:student_group_group_id;type:uuid;not null;index:idx_student_group_pair" json:"student_group_group_id"`

	StudentGroupCreatedAt time.Time      `gorm:"column:student_group_created_at;autoCreateTime" json:"student_group_created_at"`
	StudentGroupDeletedAt gorm.DeletedAt `gorm:"column:student_group_deleted_at;index" json:"student_group_deleted_at,omitempty"`
}

func (StudentGroupModel) TableName() string { return "student_groups" }

// EmployeeGroupModel joins a teacher to the group they teach.
type EmployeeGroupModel struct {
	EmployeeGroupID         uuid.UUID `gorm:"column:employee_group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"employee_group_id"`
	EmployeeGroupEmployeeID uuid.UUID `gorm:"column:employee_group_employee_id;type:uuid;not null;index" json:"employee_group_employee_id"`
	EmployeeGroupGroupID    uuid.UUID `gorm:"column:employee_group_group_id;type:uuid;not null;index" json:"employee_group_group_id"`

	EmployeeGroupCreatedAt time.Time      `gorm:"column:employee_group_created_at;autoCreateTime" json:"employee_group_created_at"`
	EmployeeGroupDeletedAt gorm.DeletedAt `gorm:"column:employee_group_deleted_at;index" json:"employee_group_deleted_at,omitempty"`
}

func (EmployeeGroupModel) TableName() string { return "employee_groups" }
