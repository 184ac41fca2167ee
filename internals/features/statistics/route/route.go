package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "edumarkaz_backend/internals/features/statistics/controller"
)

func Register(r fiber.Router, db *gorm.DB) {
	h := controller.NewStatisticsController(db)

	r.Get("/statistics/payments", h.GetPaymentStatistics)
	r.Get("/statistics/employees/:id/revenue", h.GetEmployeeRevenue)
	r.Get("/statistics/employees/:id/revenue/yearly", h.GetEmployeeYearlyRevenue)
}
