package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "edumarkaz_backend/internals/features/billing/model"
	helper "edumarkaz_backend/internals/helpers"
)

// PaymentFilter selects ledger rows. Zero-valued fields are ignored.
// Voided rows are excluded unless IncludeVoided is set (audit reads).
type PaymentFilter struct {
	SchoolID  uuid.UUID
	StudentID *uuid.UUID
	GroupID   *uuid.UUID
	GroupIDs  []uuid.UUID // restrict to these groups (employee scope); empty = no restriction

	// Billing-period match on the string columns.
	Year  string
	Month string

	// Transaction-time window, half-open [From, To).
	From *time.Time
	To   *time.Time

	Method        *string
	IncludeVoided bool

	// Listing window; zero means everything. Ignored by the aggregates.
	Limit  int
	Offset int
}

// MethodTotal is one grouped aggregation bucket.
type MethodTotal struct {
	Method string `gorm:"column:payment_method"`
	Count  int64  `gorm:"column:cnt"`
	Sum    int64  `gorm:"column:total"`
}

// LedgerStore is the persistence boundary of the reconciliation engine.
// The GORM implementation below is the production one; tests substitute
// an in-memory fake.
type LedgerStore interface {
	FindPayments(ctx context.Context, f PaymentFilter) ([]model.PaymentModel, error)
	SumPrice(ctx context.Context, f PaymentFilter) (int64, error)
	CountPayments(ctx context.Context, f PaymentFilter) (int64, error)
	SumByMethod(ctx context.Context, f PaymentFilter) ([]MethodTotal, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error)
	CreatePayment(ctx context.Context, m *model.PaymentModel) error
	UpdatePayment(ctx context.Context, m *model.PaymentModel) error
}

type gormLedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) LedgerStore {
	return &gormLedgerStore{db: db}
}

func (s *gormLedgerStore) scoped(ctx context.Context, f PaymentFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.PaymentModel{}).
		Where("payment_school_id = ?", f.SchoolID)

	if !f.IncludeVoided {
		q = q.Where("payment_status <> ?", model.PaymentStatusVoided)
	}
	if f.StudentID != nil {
		q = q.Where("payment_student_id = ?", *f.StudentID)
	}
	if f.GroupID != nil {
		q = q.Where("payment_group_id = ?", *f.GroupID)
	}
	if len(f.GroupIDs) > 0 {
		q = q.Where("payment_group_id IN ?", f.GroupIDs)
	}
	if f.Year != "" {
		q = q.Where("payment_year = ?", f.Year)
	}
	if f.Month != "" {
		q = q.Where("payment_month = ?", f.Month)
	}
	if f.From != nil {
		q = q.Where("payment_created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("payment_created_at < ?", *f.To)
	}
	if f.Method != nil {
		q = q.Where("payment_method = ?", *f.Method)
	}
	return q
}

func (s *gormLedgerStore) FindPayments(ctx context.Context, f PaymentFilter) ([]model.PaymentModel, error) {
	q := s.scoped(ctx, f).Order("payment_created_at ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []model.PaymentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	return rows, nil
}

func (s *gormLedgerStore) SumPrice(ctx context.Context, f PaymentFilter) (int64, error) {
	var total int64
	if err := s.scoped(ctx, f).
		Select("COALESCE(SUM(payment_price), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}

func (s *gormLedgerStore) CountPayments(ctx context.Context, f PaymentFilter) (int64, error) {
	var n int64
	if err := s.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (s *gormLedgerStore) SumByMethod(ctx context.Context, f PaymentFilter) ([]MethodTotal, error) {
	var rows []MethodTotal
	if err := s.scoped(ctx, f).
		Select("payment_method, COUNT(*) AS cnt, COALESCE(SUM(payment_price), 0) AS total").
		Group("payment_method").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum payments by method: %w", err)
	}
	return rows, nil
}

func (s *gormLedgerStore) GetPayment(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	var m model.PaymentModel
	if err := s.db.WithContext(ctx).First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %s: %w", id, helper.ErrNotFound)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &m, nil
}

func (s *gormLedgerStore) CreatePayment(ctx context.Context, m *model.PaymentModel) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *gormLedgerStore) UpdatePayment(ctx context.Context, m *model.PaymentModel) error {
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}
