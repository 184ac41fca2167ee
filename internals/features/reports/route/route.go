package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "edumarkaz_backend/internals/features/reports/controller"
	"edumarkaz_backend/internals/middlewares"
)

func Register(r fiber.Router, db *gorm.DB) {
	h := controller.NewReportController(db)

	r.Get("/reports/debtors", h.ListDebtors)
	r.Get("/reports/debtors/export", middlewares.ExportRateLimiter(), h.ExportDebtors)
	r.Get("/reports/payments/export", middlewares.ExportRateLimiter(), h.ExportPayments)
}
