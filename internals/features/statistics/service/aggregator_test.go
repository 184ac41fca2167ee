package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	model "edumarkaz_backend/internals/features/billing/model"
	repository "edumarkaz_backend/internals/features/billing/repository"
	helper "edumarkaz_backend/internals/helpers"
)

/* ===================== In-memory fakes ===================== */

type fakeLedger struct {
	rows []model.PaymentModel
}

func matches(f repository.PaymentFilter, p *model.PaymentModel) bool {
	if !f.IncludeVoided && p.PaymentStatus == model.PaymentStatusVoided {
		return false
	}
	if f.SchoolID != uuid.Nil && p.PaymentSchoolID != f.SchoolID {
		return false
	}
	if f.GroupID != nil && p.PaymentGroupID != *f.GroupID {
		return false
	}
	if len(f.GroupIDs) > 0 {
		ok := false
		for _, id := range f.GroupIDs {
			if p.PaymentGroupID == id {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && p.PaymentCreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !p.PaymentCreatedAt.Before(*f.To) {
		return false
	}
	return true
}

func (l *fakeLedger) FindPayments(_ context.Context, f repository.PaymentFilter) ([]model.PaymentModel, error) {
	var out []model.PaymentModel
	for i := range l.rows {
		if matches(f, &l.rows[i]) {
			out = append(out, l.rows[i])
		}
	}
	return out, nil
}

func (l *fakeLedger) SumPrice(ctx context.Context, f repository.PaymentFilter) (int64, error) {
	rows, _ := l.FindPayments(ctx, f)
	var total int64
	for i := range rows {
		total += rows[i].PaymentPrice
	}
	return total, nil
}

func (l *fakeLedger) CountPayments(ctx context.Context, f repository.PaymentFilter) (int64, error) {
	rows, _ := l.FindPayments(ctx, f)
	return int64(len(rows)), nil
}

func (l *fakeLedger) SumByMethod(ctx context.Context, f repository.PaymentFilter) ([]repository.MethodTotal, error) {
	rows, _ := l.FindPayments(ctx, f)
	index := map[string]int{}
	var out []repository.MethodTotal
	for i := range rows {
		j, ok := index[rows[i].PaymentMethod]
		if !ok {
			j = len(out)
			index[rows[i].PaymentMethod] = j
			out = append(out, repository.MethodTotal{Method: rows[i].PaymentMethod})
		}
		out[j].Count++
		out[j].Sum += rows[i].PaymentPrice
	}
	return out, nil
}

func (l *fakeLedger) GetPayment(_ context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	for i := range l.rows {
		if l.rows[i].PaymentID == id {
			return &l.rows[i], nil
		}
	}
	return nil, helper.ErrNotFound
}

func (l *fakeLedger) CreatePayment(_ context.Context, m *model.PaymentModel) error {
	l.rows = append(l.rows, *m)
	return nil
}

func (l *fakeLedger) UpdatePayment(_ context.Context, m *model.PaymentModel) error {
	return helper.ErrNotFound
}

type fakeDirectory struct {
	methods    []string
	taughtBy   map[uuid.UUID][]uuid.UUID
	commission map[uuid.UUID]int
}

func (d *fakeDirectory) ListMethods(_ context.Context, _ uuid.UUID) ([]string, error) {
	return d.methods, nil
}

func (d *fakeDirectory) GroupIDsTaughtBy(_ context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	return d.taughtBy[employeeID], nil
}

func (d *fakeDirectory) GetCommissionRate(_ context.Context, employeeID uuid.UUID) (int, error) {
	rate, ok := d.commission[employeeID]
	if !ok {
		return 0, helper.ErrNotFound
	}
	return rate, nil
}

/* ===================== Fixtures ===================== */

type statFixture struct {
	school, groupA, groupB uuid.UUID
	ledger                 *fakeLedger
	dir                    *fakeDirectory
	agg                    *Aggregator
}

func newStatFixture() *statFixture {
	f := &statFixture{
		school: uuid.New(),
		groupA: uuid.New(),
		groupB: uuid.New(),
		ledger: &fakeLedger{},
		dir: &fakeDirectory{
			methods:    []string{"Cash", "Card"},
			taughtBy:   map[uuid.UUID][]uuid.UUID{},
			commission: map[uuid.UUID]int{},
		},
	}
	f.agg = NewAggregator(f.ledger, f.dir)
	return f
}

func (f *statFixture) addPayment(group uuid.UUID, method string, price int64, at time.Time, status string) {
	f.ledger.rows = append(f.ledger.rows, model.PaymentModel{
		PaymentID:        uuid.New(),
		PaymentSchoolID:  f.school,
		PaymentGroupID:   group,
		PaymentMethod:    method,
		PaymentPrice:     price,
		PaymentStatus:    status,
		PaymentCreatedAt: at,
	})
}

/* ===================== Tests ===================== */

func TestAggregateZeroFillsEmptyWindow(t *testing.T) {
	f := newStatFixture()

	rows, err := f.agg.Aggregate(context.Background(), f.school, "2024-02", Scope{})
	require.NoError(t, err)
	require.Equal(t, []StatRow{
		{Method: "Cash"},
		{Method: "Card"},
		{Method: TotalRowLabel},
	}, rows)
}

func TestAggregateBucketsAndTotalRow(t *testing.T) {
	f := newStatFixture()
	feb := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	f.addPayment(f.groupA, "Cash", 200000, feb, model.PaymentStatusConfirmed)
	f.addPayment(f.groupA, "Cash", 100000, feb, model.PaymentStatusConfirmed)
	f.addPayment(f.groupB, "Card", 300000, feb, model.PaymentStatusConfirmed)
	// Outside the window, must not leak in.
	f.addPayment(f.groupA, "Cash", 999999, feb.AddDate(0, 1, 0), model.PaymentStatusConfirmed)
	// Voided, must not count anywhere.
	f.addPayment(f.groupB, "Card", 888888, feb, model.PaymentStatusVoided)

	rows, err := f.agg.Aggregate(context.Background(), f.school, "2024-02", Scope{})
	require.NoError(t, err)
	require.Equal(t, []StatRow{
		{Method: "Cash", Count: 2, Sum: 300000},
		{Method: "Card", Count: 1, Sum: 300000},
		{Method: TotalRowLabel, Count: 3, Sum: 600000},
	}, rows)
}

func TestAggregateOffCatalogMethodsAppendBeforeTotal(t *testing.T) {
	f := newStatFixture()
	feb := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	f.addPayment(f.groupA, "Transfer", 50000, feb, model.PaymentStatusConfirmed)
	f.addPayment(f.groupA, "Bonus", 10000, feb, model.PaymentStatusConfirmed)

	rows, err := f.agg.Aggregate(context.Background(), f.school, "2024-02", Scope{})
	require.NoError(t, err)
	// Catalog rows first (zero-filled), extras sorted, total last.
	require.Equal(t, []StatRow{
		{Method: "Cash"},
		{Method: "Card"},
		{Method: "Bonus", Count: 1, Sum: 10000},
		{Method: "Transfer", Count: 1, Sum: 50000},
		{Method: TotalRowLabel, Count: 2, Sum: 60000},
	}, rows)
}

func TestAggregateGroupScope(t *testing.T) {
	f := newStatFixture()
	feb := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	f.addPayment(f.groupA, "Cash", 200000, feb, model.PaymentStatusConfirmed)
	f.addPayment(f.groupB, "Cash", 500000, feb, model.PaymentStatusConfirmed)

	rows, err := f.agg.Aggregate(context.Background(), f.school, "2024-02", Scope{GroupID: &f.groupA})
	require.NoError(t, err)
	require.Equal(t, []StatRow{
		{Method: "Cash", Count: 1, Sum: 200000},
		{Method: "Card"},
		{Method: TotalRowLabel, Count: 1, Sum: 200000},
	}, rows)
}

func TestAggregateEmployeeWithNoGroupsIsAllZero(t *testing.T) {
	f := newStatFixture()
	feb := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	f.addPayment(f.groupA, "Cash", 200000, feb, model.PaymentStatusConfirmed)

	idle := uuid.New()
	f.dir.taughtBy[idle] = nil

	rows, err := f.agg.Aggregate(context.Background(), f.school, "2024-02", Scope{EmployeeID: &idle})
	require.NoError(t, err)
	// School-wide rows must NOT bleed into an empty teaching load.
	require.Equal(t, []StatRow{
		{Method: "Cash"},
		{Method: "Card"},
		{Method: TotalRowLabel},
	}, rows)
}

func TestAttributeRevenueAppliesCommission(t *testing.T) {
	f := newStatFixture()
	feb := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	f.addPayment(f.groupA, "Cash", 400000, feb, model.PaymentStatusConfirmed)
	f.addPayment(f.groupB, "Card", 600000, feb, model.PaymentStatusConfirmed)

	teacher := uuid.New()
	f.dir.taughtBy[teacher] = []uuid.UUID{f.groupA}
	f.dir.commission[teacher] = 40

	share, err := f.agg.AttributeRevenue(context.Background(), f.school, teacher, "2024-02")
	require.NoError(t, err)
	require.Equal(t, &RevenueShare{Rate: 40, Total: 400000, Share: 160000}, share)
}

func TestAttributeRevenueZeroRateMeansFullPassThrough(t *testing.T) {
	f := newStatFixture()
	feb := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	f.addPayment(f.groupA, "Cash", 400000, feb, model.PaymentStatusConfirmed)

	teacher := uuid.New()
	f.dir.taughtBy[teacher] = []uuid.UUID{f.groupA}
	f.dir.commission[teacher] = 0

	share, err := f.agg.AttributeRevenue(context.Background(), f.school, teacher, "2024-02")
	require.NoError(t, err)
	require.EqualValues(t, 400000, share.Total)
	require.EqualValues(t, 400000, share.Share)
}

func TestYearlyRevenueSeries(t *testing.T) {
	f := newStatFixture()
	f.addPayment(f.groupA, "Cash", 100000, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), model.PaymentStatusConfirmed)
	f.addPayment(f.groupA, "Cash", 300000, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), model.PaymentStatusConfirmed)
	// Different year, different group: both excluded.
	f.addPayment(f.groupA, "Cash", 700000, time.Date(2023, time.March, 2, 0, 0, 0, 0, time.UTC), model.PaymentStatusConfirmed)
	f.addPayment(f.groupB, "Cash", 900000, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), model.PaymentStatusConfirmed)

	teacher := uuid.New()
	f.dir.taughtBy[teacher] = []uuid.UUID{f.groupA}
	f.dir.commission[teacher] = 50

	series, err := f.agg.YearlyRevenue(context.Background(), f.school, teacher, "2024")
	require.NoError(t, err)
	require.Len(t, series, 12)

	require.Equal(t, MonthRevenue{Month: "01", Total: 100000, Share: 50000}, series[0])
	require.Equal(t, MonthRevenue{Month: "02"}, series[1])
	require.Equal(t, MonthRevenue{Month: "03", Total: 300000, Share: 150000}, series[2])
	for m := 3; m < 12; m++ {
		require.Zero(t, series[m].Total, "month %d", m+1)
	}
}

func TestYearlyRevenueRejectsNonYearPeriods(t *testing.T) {
	f := newStatFixture()
	teacher := uuid.New()

	for _, period := range []string{"2024-03", "2024-03-01", "24"} {
		_, err := f.agg.YearlyRevenue(context.Background(), f.school, teacher, period)
		require.ErrorIs(t, err, helper.ErrInvalidPeriod, "period %q", period)
	}
}
