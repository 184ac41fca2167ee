package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ===================== Status enum (string) ===================== */
/* Matches the payment_status ENUM in PostgreSQL. */

const (
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusUpdated   = "updated" // corrected in place
	PaymentStatusVoided    = "voided"  // logical removal; the row stays for audit
)

/* ===================== Model ===================== */

// PaymentModel is one ledger row. Rows are never physically deleted:
// removal sets status=voided, and every aggregate read filters on status.
// There is intentionally no gorm.DeletedAt here.
type PaymentModel struct {
	PaymentID       uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentSchoolID uuid.UUID `gorm:"column:payment_school_id;type:uuid;not null;index" json:"payment_school_id"`

	// Nullable: the student row may be removed later, the money stays booked.
	PaymentStudentID *uuid.UUID `gorm:"column:payment_student_id;type:uuid;index" json:"payment_student_id,omitempty"`
	PaymentGroupID   uuid.UUID  `gorm:"column:payment_group_id;type:uuid;not null;index" json:"payment_group_id"`

	// Billing period, stored exactly as the callers send it.
	PaymentYear  string `gorm:"column:payment_year;type:char(4);not null" json:"payment_year"`   // "2024"
	PaymentMonth string `gorm:"column:payment_month;type:char(2);not null" json:"payment_month"` // "03"

	PaymentMethod string `gorm:"column:payment_method;type:varchar(64);not null" json:"payment_method"`

	PaymentDiscountPercent int   `gorm:"column:payment_discount_percent;not null;default:0;check:payment_discount_percent >= 0 AND payment_discount_percent <= 100" json:"payment_discount_percent"`
	PaymentDiscountFixed   int64 `gorm:"column:payment_discount_fixed;not null;default:0;check:payment_discount_fixed >= 0" json:"payment_discount_fixed"`

	// Amount actually received, minor-unit-free.
	PaymentPrice int64 `gorm:"column:payment_price;not null;check:payment_price >= 0" json:"payment_price"`

	PaymentDescription *string `gorm:"column:payment_description;type:text" json:"payment_description,omitempty"`
	PaymentStatus      string  `gorm:"column:payment_status;type:payment_status;not null;default:'confirmed'" json:"payment_status"`

	// Correction trail: previous values are stashed here when a row is
	// corrected or voided.
	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

func (p *PaymentModel) IsVoided() bool { return p.PaymentStatus == PaymentStatusVoided }

// StatusLabel is the human label used on exported reports.
func StatusLabel(status string) string {
	switch status {
	case PaymentStatusConfirmed:
		return "Confirmed"
	case PaymentStatusUpdated:
		return "Corrected"
	case PaymentStatusVoided:
		return "Voided"
	default:
		return status
	}
}
