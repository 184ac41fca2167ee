package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "edumarkaz_backend/internals/features/billing/controller"
)

// Register mounts the ledger endpoints on an already-guarded router group.
func Register(r fiber.Router, db *gorm.DB) {
	h := controller.NewPaymentController(db)

	r.Post("/payments", h.CreatePayment)
	r.Get("/payments", h.ListPayments)
	r.Get("/payments/:id", h.GetPayment)
	r.Put("/payments/:id", h.UpdatePayment)
	r.Delete("/payments/:id", h.VoidPayment)

	r.Get("/students/:student_id/groups/:group_id/debt", h.GetStudentDebt)
}
