package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethodModel is the per-school catalog of allowed method labels.
// Statistics buckets are seeded from it in insertion order, so methods
// without transactions still show up with zeroes.
type PaymentMethodModel struct {
	PaymentMethodID       uuid.UUID `gorm:"column:payment_method_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_method_id"`
	PaymentMethodSchoolID uuid.UUID `gorm:"column:payment_method_school_id;type:uuid;not null;index" json:"payment_method_school_id"`
	PaymentMethodName     string    `gorm:"column:payment_method_name;type:varchar(64);not null" json:"payment_method_name"`

	PaymentMethodCreatedAt time.Time      `gorm:"column:payment_method_created_at;autoCreateTime" json:"payment_method_created_at"`
	PaymentMethodDeletedAt gorm.DeletedAt `gorm:"column:payment_method_deleted_at;index" json:"payment_method_deleted_at,omitempty"`
}

func (PaymentMethodModel) TableName() string { return "payment_methods" }
