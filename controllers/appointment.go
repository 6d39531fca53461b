package controllers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/repository"
)

type appointmentRepository interface {
	Get(ctx context.Context, id string) (models.Appointment, error)
	List(ctx context.Context, f repository.AppointmentFilter) ([]models.Appointment, error)
	Dates(ctx context.Context, professionalID string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type statusSetter interface {
	SetStatus(ctx context.Context, id string, to models.AppointmentStatus) (models.Appointment, error)
}

// AppointmentHandler is the admin agenda.
type AppointmentHandler struct {
	appointments appointmentRepository
	bookings     statusSetter
}

func NewAppointmentHandler(appointments appointmentRepository, bookings statusSetter) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, bookings: bookings}
}

type statusInput struct {
	Status string `json:"status"`
}

// GetAllAppointments godoc
// @Summary List appointments
// @Description A plain admin only sees their own professional's appointments.
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param status query string false "scheduled, completed or cancelled"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param professional_id query string false "Professional ID"
// @Success 200 {array} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/admin/appointments [get]
func (h *AppointmentHandler) GetAllAppointments(c *fiber.Ctx) error {
	f := repository.AppointmentFilter{
		ProfessionalID: c.Query("professional_id"),
		From:           c.Query("from"),
		To:             c.Query("to"),
	}
	if s := c.Query("status"); s != "" {
		status, err := models.ParseStatus(s)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: %v", booking.ErrValidation, err), "Invalid status")
		}
		f.Status = status
	}
	if scope := middleware.CurrentAdmin(c).ScopedProfessional(); scope != "" {
		f.ProfessionalID = scope
	}

	list, err := h.appointments.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err, "Failed to fetch appointments")
	}
	return c.JSON(list)
}

// UpdateAppointmentStatus godoc
// @Summary Complete or cancel an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/admin/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	var in statusInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	status, err := models.ParseStatus(in.Status)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", booking.ErrValidation, err), "Invalid status")
	}

	id := c.Params("id")
	if err := h.checkScope(c, id); err != nil {
		return respondError(c, err, "Failed to fetch appointment")
	}
	a, err := h.bookings.SetStatus(c.UserContext(), id, status)
	if err != nil {
		return respondError(c, err, "Failed to update appointment")
	}
	return c.JSON(a)
}

// DeleteAppointment godoc
// @Summary Delete an appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/admin/appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.appointments.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Failed to delete appointment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// checkScope hides other professionals' appointments from a plain admin.
func (h *AppointmentHandler) checkScope(c *fiber.Ctx, id string) error {
	scope := middleware.CurrentAdmin(c).ScopedProfessional()
	if scope == "" {
		return nil
	}
	a, err := h.appointments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if a.ProfessionalID != scope {
		return booking.ErrNotFound
	}
	return nil
}
