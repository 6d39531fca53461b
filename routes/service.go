package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/controllers"
)

// SetupServiceRoutes configures the service and professional catalog routes
func SetupServiceRoutes(api fiber.Router, h *controllers.CatalogHandler, auth fiber.Handler) {
	service := api.Group("/services")
	service.Get("/", h.GetServices)
	service.Get("/:id", h.GetService)
	service.Get("/:id/professionals", h.GetServiceProfessionals)

	api.Get("/professionals", h.GetProfessionals)

	admin := api.Group("/admin")
	admin.Get("/services", auth, h.GetAllServices)
	admin.Post("/services", auth, superAdminOnly, h.CreateService)
	admin.Put("/services/:id", auth, h.UpdateService)
	admin.Delete("/services/:id", auth, superAdminOnly, h.DeleteService)

	admin.Get("/professionals", auth, h.GetAllProfessionals)
	admin.Post("/professionals", auth, superAdminOnly, h.CreateProfessional)
	admin.Put("/professionals/:id", auth, superAdminOnly, h.UpdateProfessional)
	admin.Delete("/professionals/:id", auth, superAdminOnly, h.DeleteProfessional)
	admin.Post("/professionals/:id/photo", auth, h.UploadProfessionalPhoto)
}
