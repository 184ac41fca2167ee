package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "edumarkaz_backend/internals/features/billing/model"
	stat "edumarkaz_backend/internals/features/statistics/service"
	helper "edumarkaz_backend/internals/helpers"
)

// FlatRow is one spreadsheet line; the writer treats it positionally.
type FlatRow []string

// ExportPayment is a ledger row flattened with its student/group names
// for the transaction export.
type ExportPayment struct {
	Date        time.Time `gorm:"column:payment_created_at"`
	StudentName *string   `gorm:"column:student_name"`
	GroupName   string    `gorm:"column:group_name"`
	Method      string    `gorm:"column:payment_method"`
	Price       int64     `gorm:"column:payment_price"`
	Percent     int       `gorm:"column:payment_discount_percent"`
	Fixed       int64     `gorm:"column:payment_discount_fixed"`
	Description *string   `gorm:"column:payment_description"`
	Status      string    `gorm:"column:payment_status"`
}

var PaymentExportHeader = FlatRow{
	"#", "Date", "Student", "Group", "Method", "Amount",
	"Discount", "Fixed discount", "Description", "Status",
}

// BuildPaymentExportRows flattens transactions for the workbook. Voided
// rows never make it into the export. When statistics are attached (the
// per-method summary of a day report), two spacer rows are inserted and
// the summary reuses the Method/Amount/Status columns positionally.
func BuildPaymentExportRows(payments []ExportPayment, stats []stat.StatRow) []FlatRow {
	rows := []FlatRow{PaymentExportHeader}

	n := 0
	for _, p := range payments {
		if p.Status == model.PaymentStatusVoided {
			continue
		}
		n++
		student := "—"
		if p.StudentName != nil && *p.StudentName != "" {
			student = *p.StudentName
		}
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		rows = append(rows, FlatRow{
			strconv.Itoa(n),
			p.Date.Format("02.01.2006"),
			student,
			p.GroupName,
			p.Method,
			helper.FormatMoney(p.Price),
			strconv.Itoa(p.Percent) + "%",
			helper.FormatMoney(p.Fixed),
			desc,
			model.StatusLabel(p.Status),
		})
	}

	if len(stats) > 0 {
		blank := make(FlatRow, len(PaymentExportHeader))
		rows = append(rows, blank, blank)
		for _, s := range stats {
			row := make(FlatRow, len(PaymentExportHeader))
			row[4] = s.Method
			row[5] = helper.FormatMoney(s.Sum)
			row[9] = fmt.Sprintf("%d txn", s.Count)
			rows = append(rows, row)
		}
	}

	return rows
}

var DebtorExportHeader = FlatRow{
	"#", "Student", "Phone", "Group", "Teacher",
	"Monthly price", "Paid", "Remaining debt", "Enrolled",
}

func BuildDebtorExportRows(debtors []DebtorRow) []FlatRow {
	rows := []FlatRow{DebtorExportHeader}
	for i, d := range debtors {
		phone := ""
		if d.StudentPhone != nil {
			phone = *d.StudentPhone
		}
		rows = append(rows, FlatRow{
			strconv.Itoa(i + 1),
			d.StudentName,
			phone,
			d.GroupName,
			d.TeacherName,
			helper.FormatMoney(d.GroupPrice),
			helper.FormatMoney(d.Paid),
			helper.FormatMoney(d.Remaining),
			d.EnrolledAt.Format("02.01.2006"),
		})
	}
	return rows
}

// FetchExportPayments pulls the window's transactions with their names
// resolved, one joined query. Students removed after paying show as NULL.
func FetchExportPayments(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, w helper.Window, groupID, employeeID *uuid.UUID) ([]ExportPayment, error) {
	q := `
		SELECT p.payment_created_at, st.student_name, g.group_name,
		       p.payment_method, p.payment_price,
		       p.payment_discount_percent, p.payment_discount_fixed,
		       p.payment_description, p.payment_status
		FROM payments p
		JOIN groups g ON g.group_id = p.payment_group_id
		LEFT JOIN students st ON st.student_id = p.payment_student_id
		WHERE p.payment_school_id = ?
		  AND p.payment_status <> 'voided'`
	args := []interface{}{schoolID}

	switch w.Kind {
	case helper.PeriodDay:
		q += ` AND p.payment_created_at >= ? AND p.payment_created_at < ?`
		args = append(args, w.Start, w.End)
	case helper.PeriodMonth:
		q += ` AND p.payment_year = ? AND p.payment_month = ?`
		y, m := w.YearMonth()
		args = append(args, y, m)
	default:
		q += ` AND p.payment_year = ?`
		args = append(args, w.Start.Format("2006"))
	}

	if groupID != nil {
		q += ` AND p.payment_group_id = ?`
		args = append(args, *groupID)
	}
	if employeeID != nil {
		q += ` AND p.payment_group_id IN (
			SELECT employee_group_group_id FROM employee_groups
			WHERE employee_group_employee_id = ?
			  AND employee_group_deleted_at IS NULL)`
		args = append(args, *employeeID)
	}
	q += ` ORDER BY p.payment_created_at ASC`

	var rows []ExportPayment
	if err := db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch export payments: %w", err)
	}
	return rows, nil
}
