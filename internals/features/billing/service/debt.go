package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "edumarkaz_backend/internals/features/billing/model"
	repository "edumarkaz_backend/internals/features/billing/repository"
	dirmodel "edumarkaz_backend/internals/features/directory/model"
	helper "edumarkaz_backend/internals/helpers"
)

type DebtStatus string

const (
	DebtStatusPaid    DebtStatus = "PAID"
	DebtStatusPartial DebtStatus = "PARTIAL"
	DebtStatusUnpaid  DebtStatus = "UNPAID"
)

// Debt is the reconciled position of one student in one group for one
// billing month.
type Debt struct {
	Owed      int64      `json:"owed"`
	Paid      int64      `json:"paid"`
	Remaining int64      `json:"remaining_debt"`
	Status    DebtStatus `json:"status"`

	// The non-voided payments that produced the figures.
	Payments []model.PaymentModel `json:"payments"`
}

// Directory is the slice of the read-only directory the evaluator needs.
// *directoryservice.Service satisfies it.
type Directory interface {
	GetGroup(ctx context.Context, id uuid.UUID) (*dirmodel.GroupModel, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*dirmodel.StudentModel, error)
	FindEnrollment(ctx context.Context, studentID, groupID uuid.UUID) (*dirmodel.StudentGroupModel, error)
}

// DebtEvaluator answers "does this student still owe for this month".
type DebtEvaluator struct {
	Ledger    repository.LedgerStore
	Directory Directory
}

func NewDebtEvaluator(ledger repository.LedgerStore, dir Directory) *DebtEvaluator {
	return &DebtEvaluator{Ledger: ledger, Directory: dir}
}

// EnrolledByPeriod reports whether an enrollment started early enough to
// owe for the given window: nothing is owed for months before the
// enrollment month, so any enrollment date inside the window still counts.
func EnrolledByPeriod(enrolledAt time.Time, w helper.Window) bool {
	return enrolledAt.Before(w.End)
}

// Evaluate computes the debt of (student, group) for a "YYYY-MM" period.
// A missing student, group or enrollment surfaces as NotFound, never a
// silent default.
func (e *DebtEvaluator) Evaluate(ctx context.Context, schoolID, studentID, groupID uuid.UUID, period string) (*Debt, error) {
	w, err := helper.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if w.Kind != helper.PeriodMonth {
		return nil, fmt.Errorf("%w: debt is evaluated per month, got %q", helper.ErrInvalidPeriod, period)
	}

	if _, err := e.Directory.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	group, err := e.Directory.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	// Inactive groups are invisible to billing, same as the debtor listing.
	if !group.IsActive() {
		return nil, fmt.Errorf("group %s is inactive: %w", groupID, helper.ErrNotFound)
	}

	enr, err := e.Directory.FindEnrollment(ctx, studentID, groupID)
	if err != nil {
		return nil, err
	}
	if !EnrolledByPeriod(enr.StudentGroupCreatedAt, w) {
		return nil, fmt.Errorf("student %s enrollment in group %s starts after period %s: %w",
			studentID, groupID, period, helper.ErrNotFound)
	}

	year, month := w.YearMonth()
	payments, err := e.Ledger.FindPayments(ctx, repository.PaymentFilter{
		SchoolID:  schoolID,
		StudentID: &studentID,
		GroupID:   &groupID,
		Year:      year,
		Month:     month,
	})
	if err != nil {
		return nil, err
	}

	d := EvaluateFromPayments(group.GroupMonthlyPrice, payments)
	return &d, nil
}

// EvaluateFromPayments is the pure half of Evaluate, reused by the bulk
// debtor listing which pre-fetches its rows.
func EvaluateFromPayments(groupPrice int64, payments []model.PaymentModel) Debt {
	owed := ResolveOwed(groupPrice, payments)
	paid := SumPaid(payments)

	remaining := owed - paid
	if remaining < 0 {
		remaining = 0
	}

	status := DebtStatusPartial
	switch {
	case remaining == 0:
		status = DebtStatusPaid
	case remaining == owed:
		status = DebtStatusUnpaid
	}

	return Debt{
		Owed:      owed,
		Paid:      paid,
		Remaining: remaining,
		Status:    status,
		Payments:  payments,
	}
}
