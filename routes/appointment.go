package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/controllers"
)

// SetupAppointmentRoutes configures the public booking flow and the admin
// agenda
func SetupAppointmentRoutes(api fiber.Router, b *controllers.BookingHandler, a *controllers.AppointmentHandler, auth fiber.Handler) {
	api.Get("/availability", b.GetAvailability)

	bookings := api.Group("/bookings")
	bookings.Post("/hold", b.HoldBooking)
	bookings.Get("/pending/:token", b.GetPendingBooking)
	bookings.Post("/confirm", b.ConfirmBooking)

	appointment := api.Group("/appointments")
	appointment.Get("/", b.GetAppointmentsByPhone)
	appointment.Get("/recent", b.GetRecentAppointments)
	appointment.Post("/", b.CreateAppointment)
	appointment.Patch("/:id/cancel", b.CancelAppointment)

	admin := api.Group("/admin/appointments")
	admin.Get("/", auth, a.GetAllAppointments)
	admin.Patch("/:id/status", auth, a.UpdateAppointmentStatus)
	admin.Delete("/:id", auth, superAdminOnly, a.DeleteAppointment)
}
