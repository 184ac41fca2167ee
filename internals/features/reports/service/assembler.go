package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	repository "edumarkaz_backend/internals/features/billing/repository"
	billing "edumarkaz_backend/internals/features/billing/service"
	dirservice "edumarkaz_backend/internals/features/directory/service"
	helper "edumarkaz_backend/internals/helpers"
)

// Debtor listings are printed on fixed A4 sheets; the page size is not
// negotiable with the caller.
const DebtorPageSize = 15

const UnknownTeacherLabel = "Unknown teacher"

// EnrollmentSource is the slice of the directory the assembler needs.
// *directoryservice.Service satisfies it.
type EnrollmentSource interface {
	ListEnrollmentsWithTeacher(ctx context.Context, scope dirservice.EnrollmentScope) ([]dirservice.EnrollmentRow, error)
}

// Assembler composes debt evaluation and aggregation output into
// paginated listings and flat export records.
type Assembler struct {
	Ledger      repository.LedgerStore
	Enrollments EnrollmentSource
}

func NewAssembler(ledger repository.LedgerStore, enrollments EnrollmentSource) *Assembler {
	return &Assembler{Ledger: ledger, Enrollments: enrollments}
}

// DebtorPayment is one contributing transaction on a debtor row.
type DebtorPayment struct {
	Amount          int64     `json:"amount"`
	DiscountPercent int       `json:"discount_percent"`
	DiscountFixed   int64     `json:"discount_fixed"`
	Date            time.Time `json:"date"`
}

// DebtorRow is one (student, group) pair still owing for the period.
type DebtorRow struct {
	StudentID    uuid.UUID       `json:"student_id"`
	StudentName  string          `json:"student_name"`
	StudentPhone *string         `json:"student_phone,omitempty"`
	GroupID      uuid.UUID       `json:"group_id"`
	GroupName    string          `json:"group_name"`
	GroupPrice   int64           `json:"group_price"`
	EnrolledAt   time.Time       `json:"enrolled_at"`
	TeacherName  string          `json:"teacher_name"`
	Owed         int64           `json:"owed"`
	Paid         int64           `json:"paid"`
	Remaining    int64           `json:"remaining_debt"`
	Payments     []DebtorPayment `json:"payments"`
}

type DebtorPage struct {
	Records    []DebtorRow `json:"records"`
	Page       int         `json:"page"`
	TotalCount int         `json:"total_count"`
	TotalPages int         `json:"total_pages"`
}

// ListDebtors enumerates every enrolled (student, group) pair in scope
// whose remaining debt for the period is positive. Pairs enrolled after
// the period are excluded entirely, not counted as unpaid. An
// out-of-range page is a valid empty answer, never an error.
func (a *Assembler) ListDebtors(ctx context.Context, schoolID uuid.UUID, scope dirservice.EnrollmentScope, period string, page int) (*DebtorPage, error) {
	w, err := helper.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if w.Kind != helper.PeriodMonth {
		return nil, fmt.Errorf("%w: debtor listing needs a \"YYYY-MM\" period, got %q", helper.ErrInvalidPeriod, period)
	}
	if page < 1 {
		page = 1
	}

	scope.SchoolID = schoolID
	enrollments, err := a.Enrollments.ListEnrollmentsWithTeacher(ctx, scope)
	if err != nil {
		return nil, err
	}

	year, month := w.YearMonth()
	debtors := make([]DebtorRow, 0, len(enrollments))
	for _, e := range enrollments {
		if !billing.EnrolledByPeriod(e.EnrolledAt, w) {
			continue
		}

		studentID := e.StudentID
		groupID := e.GroupID
		payments, err := a.Ledger.FindPayments(ctx, repository.PaymentFilter{
			SchoolID:  schoolID,
			StudentID: &studentID,
			GroupID:   &groupID,
			Year:      year,
			Month:     month,
		})
		if err != nil {
			return nil, err
		}

		debt := billing.EvaluateFromPayments(e.GroupPrice, payments)
		if debt.Remaining == 0 {
			continue
		}

		teacher := UnknownTeacherLabel
		if e.TeacherName != nil && *e.TeacherName != "" {
			teacher = *e.TeacherName
		}

		breakdown := make([]DebtorPayment, 0, len(payments))
		for i := range payments {
			breakdown = append(breakdown, DebtorPayment{
				Amount:          payments[i].PaymentPrice,
				DiscountPercent: payments[i].PaymentDiscountPercent,
				DiscountFixed:   payments[i].PaymentDiscountFixed,
				Date:            payments[i].PaymentCreatedAt,
			})
		}

		debtors = append(debtors, DebtorRow{
			StudentID:    e.StudentID,
			StudentName:  e.StudentName,
			StudentPhone: e.StudentPhone,
			GroupID:      e.GroupID,
			GroupName:    e.GroupName,
			GroupPrice:   e.GroupPrice,
			EnrolledAt:   e.EnrolledAt,
			TeacherName:  teacher,
			Owed:         debt.Owed,
			Paid:         debt.Paid,
			Remaining:    debt.Remaining,
			Payments:     breakdown,
		})
	}

	total := len(debtors)
	totalPages := (total + DebtorPageSize - 1) / DebtorPageSize

	start := (page - 1) * DebtorPageSize
	records := []DebtorRow{}
	if start < total {
		end := start + DebtorPageSize
		if end > total {
			end = total
		}
		records = debtors[start:end]
	}

	return &DebtorPage{
		Records:    records,
		Page:       page,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}
