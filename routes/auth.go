package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/controllers"
)

// SetupAuthRoutes configures admin login and admin account routes
func SetupAuthRoutes(api fiber.Router, h *controllers.AdminHandler, auth fiber.Handler) {
	admin := api.Group("/admin")

	// Public routes
	admin.Post("/login", h.Login)

	// Super admin only
	admin.Get("/admins", auth, superAdminOnly, h.GetAdmins)
	admin.Post("/admins", auth, superAdminOnly, h.CreateAdmin)
	admin.Delete("/admins/:id", auth, superAdminOnly, h.DeleteAdmin)
}
