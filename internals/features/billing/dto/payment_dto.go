package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	model "edumarkaz_backend/internals/features/billing/model"
)

/* ===================== Requests ===================== */

type CreatePaymentRequest struct {
	PaymentStudentID       uuid.UUID `json:"payment_student_id" validate:"required"`
	PaymentGroupID         uuid.UUID `json:"payment_group_id" validate:"required"`
	PaymentYear            string    `json:"payment_year" validate:"required,len=4,numeric"`
	PaymentMonth           string    `json:"payment_month" validate:"required,len=2,numeric"`
	PaymentMethod          string    `json:"payment_method" validate:"required,max=64"`
	PaymentDiscountPercent int       `json:"payment_discount_percent" validate:"min=0,max=100"`
	PaymentDiscountFixed   int64     `json:"payment_discount_fixed" validate:"min=0"`
	PaymentPrice           int64     `json:"payment_price" validate:"min=0"`
	PaymentDescription     *string   `json:"payment_description,omitempty"`
}

// Validate covers what struct tags cannot: the month range.
func (r CreatePaymentRequest) Validate() error {
	if r.PaymentMonth < "01" || r.PaymentMonth > "12" {
		return fmt.Errorf("payment_month must be \"01\"..\"12\", got %q", r.PaymentMonth)
	}
	return nil
}

func (r CreatePaymentRequest) ToModel(schoolID uuid.UUID) *model.PaymentModel {
	student := r.PaymentStudentID
	return &model.PaymentModel{
		PaymentSchoolID:        schoolID,
		PaymentStudentID:       &student,
		PaymentGroupID:         r.PaymentGroupID,
		PaymentYear:            r.PaymentYear,
		PaymentMonth:           r.PaymentMonth,
		PaymentMethod:          r.PaymentMethod,
		PaymentDiscountPercent: r.PaymentDiscountPercent,
		PaymentDiscountFixed:   r.PaymentDiscountFixed,
		PaymentPrice:           r.PaymentPrice,
		PaymentDescription:     r.PaymentDescription,
		PaymentStatus:          model.PaymentStatusConfirmed,
	}
}

// UpdatePaymentRequest is a partial correction. Whatever it touches, the
// row keeps its identity and moves to status=updated.
type UpdatePaymentRequest struct {
	PaymentMethod          *string `json:"payment_method,omitempty" validate:"omitempty,max=64"`
	PaymentDiscountPercent *int    `json:"payment_discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
	PaymentDiscountFixed   *int64  `json:"payment_discount_fixed,omitempty" validate:"omitempty,min=0"`
	PaymentPrice           *int64  `json:"payment_price,omitempty" validate:"omitempty,min=0"`
	PaymentDescription     *string `json:"payment_description,omitempty"`
}

// Apply patches the model and records the previous values in the audit
// meta, so a corrected row still tells what it used to say.
func (r UpdatePaymentRequest) Apply(m *model.PaymentModel) {
	prev := map[string]interface{}{
		"payment_method":           m.PaymentMethod,
		"payment_discount_percent": m.PaymentDiscountPercent,
		"payment_discount_fixed":   m.PaymentDiscountFixed,
		"payment_price":            m.PaymentPrice,
		"corrected_at":             time.Now().UTC().Format(time.RFC3339),
	}

	if r.PaymentMethod != nil {
		m.PaymentMethod = *r.PaymentMethod
	}
	if r.PaymentDiscountPercent != nil {
		m.PaymentDiscountPercent = *r.PaymentDiscountPercent
	}
	if r.PaymentDiscountFixed != nil {
		m.PaymentDiscountFixed = *r.PaymentDiscountFixed
	}
	if r.PaymentPrice != nil {
		m.PaymentPrice = *r.PaymentPrice
	}
	if r.PaymentDescription != nil {
		m.PaymentDescription = r.PaymentDescription
	}

	if m.PaymentMeta == nil {
		m.PaymentMeta = map[string]interface{}{}
	}
	m.PaymentMeta["previous"] = prev
	m.PaymentStatus = model.PaymentStatusUpdated
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	PaymentID              uuid.UUID  `json:"payment_id"`
	PaymentSchoolID        uuid.UUID  `json:"payment_school_id"`
	PaymentStudentID       *uuid.UUID `json:"payment_student_id,omitempty"`
	PaymentGroupID         uuid.UUID  `json:"payment_group_id"`
	PaymentYear            string     `json:"payment_year"`
	PaymentMonth           string     `json:"payment_month"`
	PaymentMethod          string     `json:"payment_method"`
	PaymentDiscountPercent int        `json:"payment_discount_percent"`
	PaymentDiscountFixed   int64      `json:"payment_discount_fixed"`
	PaymentPrice           int64      `json:"payment_price"`
	PaymentDescription     *string    `json:"payment_description,omitempty"`
	PaymentStatus          string     `json:"payment_status"`
	PaymentStatusLabel     string     `json:"payment_status_label"`
	PaymentCreatedAt       time.Time  `json:"payment_created_at"`
}

func FromModel(m *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:              m.PaymentID,
		PaymentSchoolID:        m.PaymentSchoolID,
		PaymentStudentID:       m.PaymentStudentID,
		PaymentGroupID:         m.PaymentGroupID,
		PaymentYear:            m.PaymentYear,
		PaymentMonth:           m.PaymentMonth,
		PaymentMethod:          m.PaymentMethod,
		PaymentDiscountPercent: m.PaymentDiscountPercent,
		PaymentDiscountFixed:   m.PaymentDiscountFixed,
		PaymentPrice:           m.PaymentPrice,
		PaymentDescription:     m.PaymentDescription,
		PaymentStatus:          m.PaymentStatus,
		PaymentStatusLabel:     model.StatusLabel(m.PaymentStatus),
		PaymentCreatedAt:       m.PaymentCreatedAt,
	}
}

func FromModels(list []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
