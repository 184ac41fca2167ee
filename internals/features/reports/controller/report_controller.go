package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	repository "edumarkaz_backend/internals/features/billing/repository"
	dirservice "edumarkaz_backend/internals/features/directory/service"
	service "edumarkaz_backend/internals/features/reports/service"
	statservice "edumarkaz_backend/internals/features/statistics/service"
	helper "edumarkaz_backend/internals/helpers"
	"edumarkaz_backend/internals/middlewares"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	DB         *gorm.DB
	Assembler  *service.Assembler
	Aggregator *statservice.Aggregator
}

func NewReportController(db *gorm.DB) *ReportController {
	ledger := repository.NewLedgerStore(db)
	dir := dirservice.NewService(db)
	return &ReportController{
		DB:         db,
		Assembler:  service.NewAssembler(ledger, dir),
		Aggregator: statservice.NewAggregator(ledger, dir),
	}
}

func parseScope(c *fiber.Ctx) (groupID, employeeID *uuid.UUID, label string, err error) {
	if raw := c.Query("group_id"); raw != "" {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			return nil, nil, "", fiber.NewError(fiber.StatusBadRequest, "invalid group_id")
		}
		groupID = &id
		label = "group-" + raw[:8]
	}
	if raw := c.Query("employee_id"); raw != "" {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			return nil, nil, "", fiber.NewError(fiber.StatusBadRequest, "invalid employee_id")
		}
		employeeID = &id
		label = "teacher-" + raw[:8]
	}
	return groupID, employeeID, label, nil
}

// GET /reports/debtors?period=YYYY-MM&group_id=&employee_id=&page=
func (h *ReportController) ListDebtors(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	groupID, employeeID, _, err := parseScope(c)
	if err != nil {
		return err
	}

	page, err := h.Assembler.ListDebtors(c.UserContext(), schoolID,
		dirservice.EnrollmentScope{GroupID: groupID, EmployeeID: employeeID},
		c.Query("period"), c.QueryInt("page", 1))
	if err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "OK", page)
}

// GET /reports/debtors/export?period=YYYY-MM&group_id=&employee_id=
func (h *ReportController) ExportDebtors(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	groupID, employeeID, label, err := parseScope(c)
	if err != nil {
		return err
	}
	period := c.Query("period")

	page, err := h.Assembler.ListDebtors(c.UserContext(), schoolID,
		dirservice.EnrollmentScope{GroupID: groupID, EmployeeID: employeeID},
		period, 1)
	if err != nil {
		return helper.HTTPError(err)
	}

	// The export is always the full record set, not one page.
	all := page.Records
	if page.TotalPages > 1 {
		for p := 2; p <= page.TotalPages; p++ {
			next, err := h.Assembler.ListDebtors(c.UserContext(), schoolID,
				dirservice.EnrollmentScope{GroupID: groupID, EmployeeID: employeeID},
				period, p)
			if err != nil {
				return helper.HTTPError(err)
			}
			all = append(all, next.Records...)
		}
	}

	name := service.ExportName("debtors", label, period)
	payload, err := service.WriteWorkbook(service.SheetName(name), service.BuildDebtorExportRows(all))
	if err != nil {
		return helper.HTTPError(err)
	}
	return sendWorkbook(c, name, payload)
}

// GET /reports/payments/export?period=YYYY[-MM[-DD]]&group_id=&employee_id=
func (h *ReportController) ExportPayments(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	groupID, employeeID, label, err := parseScope(c)
	if err != nil {
		return err
	}

	period := c.Query("period")
	if period == "" && groupID != nil {
		return helper.HTTPError(fmt.Errorf("%w: group export needs a month or day period", helper.ErrInsufficientParams))
	}
	w, err := helper.ParsePeriod(period)
	if err != nil {
		return helper.HTTPError(err)
	}
	// A year-wide group export is not a supported report shape.
	if groupID != nil && w.Kind == helper.PeriodYear {
		return helper.HTTPError(fmt.Errorf("%w: group export needs a month or day period, got %q", helper.ErrInsufficientParams, period))
	}

	payments, err := service.FetchExportPayments(c.UserContext(), h.DB, schoolID, w, groupID, employeeID)
	if err != nil {
		return helper.HTTPError(err)
	}

	// Day reports carry the per-method summary block under the rows.
	var stats []statservice.StatRow
	if w.Kind == helper.PeriodDay {
		scope := statservice.Scope{GroupID: groupID, EmployeeID: employeeID}
		stats, err = h.Aggregator.Aggregate(c.UserContext(), schoolID, period, scope)
		if err != nil {
			return helper.HTTPError(err)
		}
	}

	name := service.ExportName("payments", label, period)
	payload, err := service.WriteWorkbook(service.SheetName(name), service.BuildPaymentExportRows(payments, stats))
	if err != nil {
		return helper.HTTPError(err)
	}
	return sendWorkbook(c, name, payload)
}

func sendWorkbook(c *fiber.Ctx, name string, payload []byte) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	return c.Send(payload)
}
