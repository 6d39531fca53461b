package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/utils"
)

type catalogRepository interface {
	booking.CatalogStore
	ListServices(ctx context.Context, activeOnly bool, professionalID string) ([]models.Service, error)
	ListProfessionals(ctx context.Context, activeOnly bool) ([]models.Professional, error)
	ProfessionalsForService(ctx context.Context, serviceID string) ([]models.Professional, error)
	ServiceWithProfessionals(ctx context.Context, id string) (models.Service, error)
	SaveService(ctx context.Context, s *models.Service, professionalIDs []string) error
	SaveProfessional(ctx context.Context, p *models.Professional, serviceIDs []string) error
	SetPhotoURL(ctx context.Context, professionalID, url string) error
	DeleteService(ctx context.Context, id string) error
	DeleteProfessional(ctx context.Context, id string) error
}

type photoUploader interface {
	UploadPhoto(ctx context.Context, file interface{}, publicID string) (string, error)
}

type autoCompleter interface {
	AutoComplete(ctx context.Context) (int64, error)
}

// CatalogHandler serves services and professionals.
type CatalogHandler struct {
	catalog  catalogRepository
	sweeper  autoCompleter
	uploader photoUploader
}

func NewCatalogHandler(catalog catalogRepository, sweeper autoCompleter, uploader photoUploader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, sweeper: sweeper, uploader: uploader}
}

type serviceInput struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Active          *bool    `json:"active"`
	ProfessionalIDs []string `json:"professional_ids"`
}

func (in serviceInput) apply(s *models.Service) error {
	s.Name = strings.TrimSpace(in.Name)
	s.DurationMinutes = in.DurationMinutes
	s.Price = in.Price
	s.Category = strings.TrimSpace(in.Category)
	if s.Category == "" {
		s.Category = "General"
	}
	if in.Active != nil {
		s.Active = *in.Active
	}

	switch {
	case s.Name == "":
		return fmt.Errorf("%w: name is required", booking.ErrValidation)
	case s.DurationMinutes <= 0:
		return fmt.Errorf("%w: duration_minutes must be positive", booking.ErrValidation)
	case s.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", booking.ErrValidation)
	}
	return nil
}

type professionalInput struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Specialties []string `json:"specialties"`
	Active      *bool    `json:"active"`
	ServiceIDs  []string `json:"service_ids"`
}

func (in professionalInput) apply(p *models.Professional) error {
	p.Name = strings.TrimSpace(in.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", booking.ErrValidation)
	}

	p.Email = nil
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		p.Email = &email
	}
	p.Phone = nil
	if digits := utils.DigitsOnly(in.Phone); digits != "" {
		if !utils.ValidPhone(digits) {
			return fmt.Errorf("%w: phone must have 10 or 11 digits", booking.ErrValidation)
		}
		p.Phone = &digits
	}

	p.Specialties = models.StringList{}
	for _, s := range in.Specialties {
		if s = strings.TrimSpace(s); s != "" {
			p.Specialties = append(p.Specialties, s)
		}
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	return nil
}

// GetServices godoc
// @Summary List active services
// @Tags services
// @Produce json
// @Param professional_id query string false "Only services this professional offers"
// @Success 200 {array} models.Service
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/services [get]
func (h *CatalogHandler) GetServices(c *fiber.Ctx) error {
	// Landing on the catalog settles appointments whose day has passed.
	if h.sweeper != nil {
		if _, err := h.sweeper.AutoComplete(c.UserContext()); err != nil {
			log.Warnw("auto-complete on catalog load failed", "error", err)
		}
	}

	list, err := h.catalog.ListServices(c.UserContext(), true, c.Query("professional_id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch services")
	}
	return c.JSON(list)
}

// GetService godoc
// @Summary Get an active service
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} models.Service
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/services/{id} [get]
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	s, err := h.catalog.GetService(c.UserContext(), c.Params("id"))
	if err == nil && !s.Active {
		err = booking.ErrNotFound
	}
	if err != nil {
		return respondError(c, err, "Failed to fetch service")
	}
	return c.JSON(s)
}

// GetServiceProfessionals godoc
// @Summary Professionals who perform a service
// @Description Linked active professionals, or every active professional when nobody is linked.
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {array} models.Professional
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/services/{id}/professionals [get]
func (h *CatalogHandler) GetServiceProfessionals(c *fiber.Ctx) error {
	list, err := h.catalog.ProfessionalsForService(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch professionals")
	}
	return c.JSON(list)
}

// GetProfessionals godoc
// @Summary List active professionals
// @Tags professionals
// @Produce json
// @Success 200 {array} models.Professional
// @Router /api/professionals [get]
func (h *CatalogHandler) GetProfessionals(c *fiber.Ctx) error {
	list, err := h.catalog.ListProfessionals(c.UserContext(), true)
	if err != nil {
		return respondError(c, err, "Failed to fetch professionals")
	}
	return c.JSON(list)
}

// GetAllServices godoc
// @Summary List every service, inactive included
// @Tags services
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Service
// @Router /api/admin/services [get]
func (h *CatalogHandler) GetAllServices(c *fiber.Ctx) error {
	list, err := h.catalog.ListServices(c.UserContext(), false, "")
	if err != nil {
		return respondError(c, err, "Failed to fetch services")
	}
	return c.JSON(list)
}

// GetAllProfessionals godoc
// @Summary List every professional, inactive included
// @Tags professionals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Professional
// @Router /api/admin/professionals [get]
func (h *CatalogHandler) GetAllProfessionals(c *fiber.Ctx) error {
	list, err := h.catalog.ListProfessionals(c.UserContext(), false)
	if err != nil {
		return respondError(c, err, "Failed to fetch professionals")
	}
	return c.JSON(list)
}

// CreateService godoc
// @Summary Create a service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Service
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/admin/services [post]
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var in serviceInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	s := models.Service{Active: true}
	if err := in.apply(&s); err != nil {
		return respondError(c, err, "Invalid service")
	}
	if err := h.catalog.SaveService(c.UserContext(), &s, in.ProfessionalIDs); err != nil {
		return respondError(c, err, "Failed to create service")
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// UpdateService godoc
// @Summary Update a service
// @Description A plain admin may only edit services linked to their professional and cannot change the links.
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} models.Service
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/admin/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	var in serviceInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	s, err := h.catalog.ServiceWithProfessionals(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch service")
	}
	if admin := middleware.CurrentAdmin(c); admin.Role != models.RoleSuperAdmin {
		if !linkedTo(s, admin.ScopedProfessional()) {
			return respondError(c, booking.ErrNotFound, "Failed to fetch service")
		}
		in.ProfessionalIDs = nil
	}
	s.Professionals = nil
	if err := in.apply(&s); err != nil {
		return respondError(c, err, "Invalid service")
	}
	if err := h.catalog.SaveService(c.UserContext(), &s, in.ProfessionalIDs); err != nil {
		return respondError(c, err, "Failed to update service")
	}
	return c.JSON(s)
}

func linkedTo(s models.Service, professionalID string) bool {
	if professionalID == "" {
		return false
	}
	for _, p := range s.Professionals {
		if p.ID == professionalID {
			return true
		}
	}
	return false
}

// DeleteService godoc
// @Summary Delete a service
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/admin/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	if err := h.catalog.DeleteService(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Failed to delete service")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProfessional godoc
// @Summary Create a professional
// @Tags professionals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Professional
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/admin/professionals [post]
func (h *CatalogHandler) CreateProfessional(c *fiber.Ctx) error {
	var in professionalInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	p := models.Professional{Active: true}
	if err := in.apply(&p); err != nil {
		return respondError(c, err, "Invalid professional")
	}
	if err := h.catalog.SaveProfessional(c.UserContext(), &p, in.ServiceIDs); err != nil {
		return respondError(c, err, "Failed to create professional")
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProfessional godoc
// @Summary Update a professional
// @Tags professionals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Success 200 {object} models.Professional
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/admin/professionals/{id} [put]
func (h *CatalogHandler) UpdateProfessional(c *fiber.Ctx) error {
	var in professionalInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	p, err := h.catalog.GetProfessional(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch professional")
	}
	if err := in.apply(&p); err != nil {
		return respondError(c, err, "Invalid professional")
	}
	if err := h.catalog.SaveProfessional(c.UserContext(), &p, in.ServiceIDs); err != nil {
		return respondError(c, err, "Failed to update professional")
	}
	return c.JSON(p)
}

// DeleteProfessional godoc
// @Summary Delete a professional
// @Tags professionals
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/admin/professionals/{id} [delete]
func (h *CatalogHandler) DeleteProfessional(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProfessional(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Failed to delete professional")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadProfessionalPhoto godoc
// @Summary Upload a professional's photo
// @Description A plain admin may only change the photo of their own professional.
// @Tags professionals
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param photo formData file true "Photo"
// @Success 200 {object} map[string]string
// @Failure 403 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/admin/professionals/{id}/photo [post]
func (h *CatalogHandler) UploadProfessionalPhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	if scope := middleware.CurrentAdmin(c).ScopedProfessional(); scope != "" && scope != id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only change your own photo",
		})
	}
	if _, err := h.catalog.GetProfessional(c.UserContext(), id); err != nil {
		return respondError(c, err, "Failed to fetch professional")
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "photo file is required",
			Error:   err.Error(),
		})
	}
	file, err := fh.Open()
	if err != nil {
		return respondError(c, err, "Failed to read photo")
	}
	defer file.Close()

	url, err := h.uploader.UploadPhoto(c.UserContext(), file, id)
	if err != nil {
		return respondError(c, err, "Failed to upload photo")
	}
	if err := h.catalog.SetPhotoURL(c.UserContext(), id, url); err != nil {
		return respondError(c, err, "Failed to save photo")
	}
	return c.JSON(fiber.Map{"photo_url": url})
}
