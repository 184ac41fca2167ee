package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeModel splits pay into a fixed salary and a commission rate.
// The rate is a percent of collected group revenue; 0 means the employee
// takes the full collected sum, not nothing.
type EmployeeModel struct {
	EmployeeID       uuid.UUID `gorm:"column:employee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"employee_id"`
	EmployeeSchoolID uuid.UUID `gorm:"column:employee_school_id;type:uuid;not null;index" json:"employee_school_id"`
	EmployeeName     string    `gorm:"column:employee_name;type:text;not null" json:"employee_name"`
	EmployeePhone    *string   `gorm:"column:employee_phone;type:varchar(20)" json:"employee_phone,omitempty"`

	EmployeeFixedSalary    int64 `gorm:"column:employee_fixed_salary;not null;default:0;check:employee_fixed_salary >= 0" json:"employee_fixed_salary"`
	EmployeeCommissionRate int   `gorm:"column:employee_commission_rate;not null;default:0;check:employee_commission_rate >= 0 AND employee_commission_rate <= 100" json:"employee_commission_rate"`

	EmployeeCreatedAt time.Time      `gorm:"column:employee_created_at;autoCreateTime" json:"employee_created_at"`
	EmployeeUpdatedAt *time.Time     `gorm:"column:employee_updated_at;autoUpdateTime" json:"employee_updated_at,omitempty"`
	EmployeeDeletedAt gorm.DeletedAt `gorm:"column:employee_deleted_at;index" json:"employee_deleted_at,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }
