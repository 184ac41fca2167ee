package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	model "edumarkaz_backend/internals/features/billing/model"
	repository "edumarkaz_backend/internals/features/billing/repository"
	dirmodel "edumarkaz_backend/internals/features/directory/model"
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
	if f.StudentID != nil && (p.PaymentStudentID == nil || *p.PaymentStudentID != *f.StudentID) {
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
	if f.Year != "" && p.PaymentYear != f.Year {
		return false
	}
	if f.Month != "" && p.PaymentMonth != f.Month {
		return false
	}
	if f.From != nil && p.PaymentCreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !p.PaymentCreatedAt.Before(*f.To) {
		return false
	}
	if f.Method != nil && p.PaymentMethod != *f.Method {
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
	for i := range l.rows {
		if l.rows[i].PaymentID == m.PaymentID {
			l.rows[i] = *m
			return nil
		}
	}
	return helper.ErrNotFound
}

type fakeDirectory struct {
	groups      map[uuid.UUID]*dirmodel.GroupModel
	students    map[uuid.UUID]*dirmodel.StudentModel
	enrollments map[[2]uuid.UUID]*dirmodel.StudentGroupModel
}

func (d *fakeDirectory) GetGroup(_ context.Context, id uuid.UUID) (*dirmodel.GroupModel, error) {
	if g, ok := d.groups[id]; ok {
		return g, nil
	}
	return nil, helper.ErrNotFound
}

func (d *fakeDirectory) GetStudent(_ context.Context, id uuid.UUID) (*dirmodel.StudentModel, error) {
	if s, ok := d.students[id]; ok {
		return s, nil
	}
	return nil, helper.ErrNotFound
}

func (d *fakeDirectory) FindEnrollment(_ context.Context, studentID, groupID uuid.UUID) (*dirmodel.StudentGroupModel, error) {
	if e, ok := d.enrollments[[2]uuid.UUID{studentID, groupID}]; ok {
		return e, nil
	}
	return nil, helper.ErrNotFound
}

/* ===================== Fixtures ===================== */

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type debtFixture struct {
	school, student, group uuid.UUID
	ledger                 *fakeLedger
	dir                    *fakeDirectory
	eval                   *DebtEvaluator
}

func newDebtFixture(enrolledAt time.Time, groupPrice int64) *debtFixture {
	f := &debtFixture{
		school:  uuid.New(),
		student: uuid.New(),
		group:   uuid.New(),
		ledger:  &fakeLedger{},
	}
	f.dir = &fakeDirectory{
		groups: map[uuid.UUID]*dirmodel.GroupModel{
			f.group: {GroupID: f.group, GroupSchoolID: f.school, GroupName: "English B2", GroupMonthlyPrice: groupPrice, GroupStatus: dirmodel.GroupStatusActive},
		},
		students: map[uuid.UUID]*dirmodel.StudentModel{
			f.student: {StudentID: f.student, StudentSchoolID: f.school, StudentName: "Aziz Karimov"},
		},
		enrollments: map[[2]uuid.UUID]*dirmodel.StudentGroupModel{
			{f.student, f.group}: {StudentGroupStudentID: f.student, StudentGroupGroupID: f.group, StudentGroupCreatedAt: enrolledAt},
		},
	}
	f.eval = NewDebtEvaluator(f.ledger, f.dir)
	return f
}

func (f *debtFixture) addPayment(year, month string, price int64, status string) {
	student := f.student
	f.ledger.rows = append(f.ledger.rows, model.PaymentModel{
		PaymentID:        uuid.New(),
		PaymentSchoolID:  f.school,
		PaymentStudentID: &student,
		PaymentGroupID:   f.group,
		PaymentYear:      year,
		PaymentMonth:     month,
		PaymentMethod:    "Cash",
		PaymentPrice:     price,
		PaymentStatus:    status,
	})
}

/* ===================== Tests ===================== */

func TestEvaluateEnrollmentCutoff(t *testing.T) {
	f := newDebtFixture(date(2024, time.March, 15), 500000)
	ctx := context.Background()

	// Before the enrollment month: the pair does not exist for billing.
	_, err := f.eval.Evaluate(ctx, f.school, f.student, f.group, "2024-02")
	require.ErrorIs(t, err, helper.ErrNotFound)

	// Enrollment month itself counts, even mid-month.
	d, err := f.eval.Evaluate(ctx, f.school, f.student, f.group, "2024-03")
	require.NoError(t, err)
	require.Equal(t, DebtStatusUnpaid, d.Status)
	require.EqualValues(t, 500000, d.Remaining)

	// And so does every month after.
	d, err = f.eval.Evaluate(ctx, f.school, f.student, f.group, "2024-04")
	require.NoError(t, err)
	require.EqualValues(t, 500000, d.Remaining)
}

func TestEvaluateVoidedPaymentsDoNotCount(t *testing.T) {
	f := newDebtFixture(date(2024, time.January, 5), 300000)
	f.addPayment("2024", "02", 300000, model.PaymentStatusVoided)
	f.addPayment("2024", "02", 100000, model.PaymentStatusConfirmed)

	d, err := f.eval.Evaluate(context.Background(), f.school, f.student, f.group, "2024-02")
	require.NoError(t, err)
	require.EqualValues(t, 100000, d.Paid)
	require.EqualValues(t, 200000, d.Remaining)
	require.Equal(t, DebtStatusPartial, d.Status)
	require.Len(t, d.Payments, 1)
}

func TestEvaluatePaymentsOutsidePeriodIgnored(t *testing.T) {
	f := newDebtFixture(date(2024, time.January, 5), 300000)
	f.addPayment("2024", "01", 300000, model.PaymentStatusConfirmed)

	d, err := f.eval.Evaluate(context.Background(), f.school, f.student, f.group, "2024-02")
	require.NoError(t, err)
	require.EqualValues(t, 0, d.Paid)
	require.Equal(t, DebtStatusUnpaid, d.Status)
}

func TestEvaluateRejectsBadPeriods(t *testing.T) {
	f := newDebtFixture(date(2024, time.January, 5), 300000)
	ctx := context.Background()

	for _, period := range []string{"", "2024", "2024-03-15", "03-2024", "2024-13", "abcd-ef"} {
		_, err := f.eval.Evaluate(ctx, f.school, f.student, f.group, period)
		require.ErrorIs(t, err, helper.ErrInvalidPeriod, "period %q", period)
	}
}

func TestEvaluateInactiveGroupIsNotFound(t *testing.T) {
	f := newDebtFixture(date(2024, time.January, 5), 300000)
	f.dir.groups[f.group].GroupStatus = dirmodel.GroupStatusInactive

	_, err := f.eval.Evaluate(context.Background(), f.school, f.student, f.group, "2024-02")
	require.ErrorIs(t, err, helper.ErrNotFound)
}

func TestEvaluateMissingEntitiesAreNotFound(t *testing.T) {
	f := newDebtFixture(date(2024, time.January, 5), 300000)
	ctx := context.Background()

	_, err := f.eval.Evaluate(ctx, f.school, uuid.New(), f.group, "2024-02")
	require.ErrorIs(t, err, helper.ErrNotFound)

	_, err = f.eval.Evaluate(ctx, f.school, f.student, uuid.New(), "2024-02")
	require.ErrorIs(t, err, helper.ErrNotFound)
}
