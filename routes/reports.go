package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/controllers"
)

func SetupReportRoutes(api fiber.Router, h *controllers.ReportHandler, auth fiber.Handler) {
	reports := api.Group("/admin/reports")
	reports.Get("/months", auth, h.GetMonths)
	reports.Get("/monthly", auth, h.GetMonthlyReport)
	reports.Get("/monthly/services/:name", auth, h.GetServiceReport)
}
