package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/controllers"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
)

// Handlers groups every controller the API mounts.
type Handlers struct {
	Booking      *controllers.BookingHandler
	Catalog      *controllers.CatalogHandler
	Admin        *controllers.AdminHandler
	Appointments *controllers.AppointmentHandler
	Reports      *controllers.ReportHandler
}

// Setup mounts the public and admin API under /api.
func Setup(app *fiber.App, h Handlers, jwtSecret string) {
	api := app.Group("/api")
	auth := middleware.Protected(jwtSecret)

	SetupServiceRoutes(api, h.Catalog, auth)
	SetupAppointmentRoutes(api, h.Booking, h.Appointments, auth)
	SetupAuthRoutes(api, h.Admin, auth)
	SetupReportRoutes(api, h.Reports, auth)
}

var superAdminOnly = middleware.RequireRole(models.RoleSuperAdmin)
