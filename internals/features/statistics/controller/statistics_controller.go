package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	repository "edumarkaz_backend/internals/features/billing/repository"
	dirservice "edumarkaz_backend/internals/features/directory/service"
	service "edumarkaz_backend/internals/features/statistics/service"
	helper "edumarkaz_backend/internals/helpers"
	"edumarkaz_backend/internals/middlewares"
)

type StatisticsController struct {
	DB         *gorm.DB
	Aggregator *service.Aggregator
}

func NewStatisticsController(db *gorm.DB) *StatisticsController {
	return &StatisticsController{
		DB:         db,
		Aggregator: service.NewAggregator(repository.NewLedgerStore(db), dirservice.NewService(db)),
	}
}

// GET /statistics/payments?period=YYYY[-MM[-DD]]&group_id=&employee_id=
func (h *StatisticsController) GetPaymentStatistics(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	scope := service.Scope{}
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid group_id")
		}
		scope.GroupID = &id
	}
	if raw := c.Query("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid employee_id")
		}
		scope.EmployeeID = &id
	}

	rows, err := h.Aggregator.Aggregate(c.UserContext(), schoolID, c.Query("period"), scope)
	if err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "OK", fiber.Map{"rows": rows})
}

// GET /statistics/employees/:id/revenue?period=YYYY[-MM[-DD]]
func (h *StatisticsController) GetEmployeeRevenue(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid employee id")
	}

	share, err := h.Aggregator.AttributeRevenue(c.UserContext(), schoolID, employeeID, c.Query("period"))
	if err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "OK", share)
}

// GET /statistics/employees/:id/revenue/yearly?year=YYYY
func (h *StatisticsController) GetEmployeeYearlyRevenue(c *fiber.Ctx) error {
	schoolID, err := middlewares.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid employee id")
	}

	series, err := h.Aggregator.YearlyRevenue(c.UserContext(), schoolID, employeeID, c.Query("year"))
	if err != nil {
		return helper.HTTPError(err)
	}
	return helper.Success(c, "OK", fiber.Map{"months": series})
}
