package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoute "edumarkaz_backend/internals/features/billing/route"
	reportsRoute "edumarkaz_backend/internals/features/reports/route"
	statisticsRoute "edumarkaz_backend/internals/features/statistics/route"

	"edumarkaz_backend/internals/constants"
	"edumarkaz_backend/internals/middlewares"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Everything financial sits behind the JWT guard; tokens are issued
	// by the auth service, we only validate them here.
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		middlewares.AuthJWT(middlewares.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		middlewares.RequireRole(constants.BillingRoles...),
	)

	log.Println("[INFO] Mounting Billing routes...")
	billingRoute.Register(admin, db)

	log.Println("[INFO] Mounting Statistics routes...")
	statisticsRoute.Register(admin, db)

	log.Println("[INFO] Mounting Report routes...")
	reportsRoute.Register(admin, db)
}
