package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type adminRepository interface {
	ByEmail(ctx context.Context, email string) (models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, a *models.Admin) error
	Delete(ctx context.Context, id string) error
}

// AdminHandler handles admin login and admin account management.
type AdminHandler struct {
	admins adminRepository
	secret string
	now    func() time.Time
}

func NewAdminHandler(admins adminRepository, secret string) *AdminHandler {
	return &AdminHandler{admins: admins, secret: secret, now: time.Now}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminInput struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	ProfessionalID *string `json:"professional_id"`
}

// Login godoc
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}

	admin, err := h.admins.ByEmail(c.UserContext(), in.Email)
	if err != nil {
		if !errors.Is(err, booking.ErrNotFound) {
			return respondError(c, err, "Failed to log in")
		}
		return invalidCredentials(c)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return invalidCredentials(c)
	}

	token, err := middleware.GenerateToken(h.secret, admin, h.now())
	if err != nil {
		return respondError(c, err, "Failed to generate token")
	}
	log.Infow("admin logged in", "admin_id", admin.ID, "role", admin.Role)

	return c.JSON(fiber.Map{
		"token": token,
		"admin": admin,
	})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid credentials",
	})
}

// GetAdmins godoc
// @Summary List admin accounts
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Admin
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/admin/admins [get]
func (h *AdminHandler) GetAdmins(c *fiber.Ctx) error {
	list, err := h.admins.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to fetch admins")
	}
	return c.JSON(list)
}

// CreateAdmin godoc
// @Summary Create an admin account
// @Description A plain admin without professional_id gets a new professional with the same name and email.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Admin
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/admin/admins [post]
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var in adminInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	admin, err := in.admin()
	if err != nil {
		return respondError(c, err, "Invalid admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err, "Failed to hash password")
	}
	admin.PasswordHash = string(hash)

	if err := h.admins.Create(c.UserContext(), &admin); err != nil {
		return respondError(c, err, "Failed to create admin")
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (in adminInput) admin() (models.Admin, error) {
	a := models.Admin{
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Name:           strings.TrimSpace(in.Name),
		Role:           in.Role,
		ProfessionalID: in.ProfessionalID,
	}
	if a.Role == "" {
		a.Role = models.RoleAdmin
	}
	if a.ProfessionalID != nil && *a.ProfessionalID == "" {
		a.ProfessionalID = nil
	}

	switch {
	case a.Name == "":
		return a, fmt.Errorf("%w: name is required", booking.ErrValidation)
	case !strings.Contains(a.Email, "@"):
		return a, fmt.Errorf("%w: a valid email is required", booking.ErrValidation)
	case len(in.Password) < minPasswordLength:
		return a, fmt.Errorf("%w: password must have at least %d characters", booking.ErrValidation, minPasswordLength)
	case a.Role != models.RoleAdmin && a.Role != models.RoleSuperAdmin:
		return a, fmt.Errorf("%w: role must be admin or super_admin", booking.ErrValidation)
	}
	return a, nil
}

// DeleteAdmin godoc
// @Summary Delete an admin account
// @Tags admins
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/admin/admins/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == middleware.CurrentAdmin(c).ID {
		return respondError(c, fmt.Errorf("%w: you cannot delete your own account", booking.ErrValidation), "Invalid request")
	}
	if err := h.admins.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "Failed to delete admin")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
