package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "edumarkaz_backend/internals/features/billing/dto"
	model "edumarkaz_backend/internals/features/billing/model"
	repository "edumarkaz_backend/internals/features/billing/repository"
	service "edumarkaz_backend/internals/features/billing/service"
	dirservice "edumarkaz_backend/internals/features/directory/service"
	helper "edumarkaz_backend/internals/helpers"
	"edumarkaz_backend/internals/middlewares"
)

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Ledger    repository.LedgerStore
	Directory *dirservice.Service
	Debt      *service.DebtEvaluator
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	ledger := repository.NewLedgerStore(db)
	dir := dirservice.NewService(db)
	return &PaymentController{
		DB:        db,
		Validator: validator.New(),
		Ledger:    ledger,
		Directory: dir,
		Debt:      service.NewDebtEvaluator(ledger, dir),
	}
}

// POST /payments
func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Referential targets must exist; a bad id is the caller's problem.
	if _, err := h.Directory.GetStudent(c.UserContext(), req.PaymentStudentID); err != nil {
		return helper.HTTPError(err)
	}
	if _, err := h.Directory.GetGroup(c.UserContext(), req.PaymentGroupID); err != nil {
		return helper.HTTPError(err)
	}

	m := req.ToModel(schoolID)
	if err := h.Ledger.CreatePayment(c.UserContext(), m); err != nil {
		return helper.HTTPError(err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment recorded", dto.FromModel(m))
}

// PUT /payments/:id corrects a row in place: status moves to updated
// and the previous values land in the audit meta.
func (h *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	m, err := h.Ledger.GetPayment(c.UserContext(), id)
	if err != nil {
		return helper.HTTPError(err)
	}
	if m.IsVoided() {
		return fiber.NewError(fiber.StatusConflict, "payment is voided and can no longer be corrected")
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(m)
	if err := h.Ledger.UpdatePayment(c.UserContext(), m); err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "Payment corrected", dto.FromModel(m))
}

// DELETE /payments/:id is a logical removal only.
func (h *PaymentController) VoidPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	m, err := h.Ledger.GetPayment(c.UserContext(), id)
	if err != nil {
		return helper.HTTPError(err)
	}
	if m.IsVoided() {
		return helper.Success(c, "Payment already voided", dto.FromModel(m))
	}

	if m.PaymentMeta == nil {
		m.PaymentMeta = map[string]interface{}{}
	}
	m.PaymentMeta["voided_at"] = time.Now().UTC().Format(time.RFC3339)
	m.PaymentStatus = model.PaymentStatusVoided
	if err := h.Ledger.UpdatePayment(c.UserContext(), m); err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "Payment voided", dto.FromModel(m))
}

// GET /payments/:id; voided rows stay readable for audit.
func (h *PaymentController) GetPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}
	m, err := h.Ledger.GetPayment(c.UserContext(), id)
	if err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "OK", dto.FromModel(m))
}

// GET /payments?group_id=&student_id=&period=YYYY-MM&include_voided=
func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	f := repository.PaymentFilter{
		SchoolID:      schoolID,
		IncludeVoided: c.QueryBool("include_voided"),
	}
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid group_id")
		}
		f.GroupID = &id
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid student_id")
		}
		f.StudentID = &id
	}
	if period := c.Query("period"); period != "" {
		w, err := helper.ParsePeriod(period)
		if err != nil {
			return helper.HTTPError(err)
		}
		switch w.Kind {
		case helper.PeriodMonth:
			f.Year, f.Month = w.YearMonth()
		case helper.PeriodYear:
			f.Year = w.Start.Format("2006")
		default:
			f.From, f.To = &w.Start, &w.End
		}
	}

	p := helper.ParseFiber(c, "payment_created_at", "desc", helper.AdminOpts)
	total, err := h.Ledger.CountPayments(c.UserContext(), f)
	if err != nil {
		return helper.HTTPError(err)
	}
	f.Limit, f.Offset = p.Limit(), p.Offset()
	rows, err := h.Ledger.FindPayments(c.UserContext(), f)
	if err != nil {
		return helper.HTTPError(err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"records": dto.FromModels(rows),
		"meta":    helper.BuildMeta(total, p),
	})
}

// GET /students/:student_id/groups/:group_id/debt?period=YYYY-MM
func (h *PaymentController) GetStudentDebt(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid student id")
	}
	groupID, err := uuid.Parse(c.Params("group_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	debt, err := h.Debt.Evaluate(c.UserContext(), schoolID, studentID, groupID, c.Query("period"))
	if err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "OK", debt)
}
