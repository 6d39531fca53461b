package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/utils"
)

// BookingHandler serves the public booking flow.
type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type confirmInput struct {
	Token       string `json:"token"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

type cancelInput struct {
	Phone string `json:"phone"`
}

// GetAvailability godoc
// @Summary Slot grid of a professional on a date
// @Tags bookings
// @Produce json
// @Param professional_id query string true "Professional ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} booking.DayAvailability
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/availability [get]
func (h *BookingHandler) GetAvailability(c *fiber.Ctx) error {
	day, err := h.bookings.Availability(c.UserContext(), c.Query("professional_id"), c.Query("date"))
	if err != nil {
		return respondError(c, err, "Failed to load availability")
	}
	return c.JSON(day)
}

// HoldBooking godoc
// @Summary Park a selected slot until the client confirms it
// @Tags bookings
// @Accept json
// @Produce json
// @Param selection body booking.Selection true "Selection"
// @Success 201 {object} booking.PendingBooking
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/bookings/hold [post]
func (h *BookingHandler) HoldBooking(c *fiber.Ctx) error {
	var sel booking.Selection
	if err := c.BodyParser(&sel); err != nil {
		return badBody(c, err)
	}
	p, err := h.bookings.Hold(c.UserContext(), sel)
	if err != nil {
		return respondError(c, err, "Failed to hold booking")
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetPendingBooking godoc
// @Summary Load a held selection
// @Tags bookings
// @Produce json
// @Param token path string true "Pending booking token"
// @Success 200 {object} booking.PendingBooking
// @Failure 410 {object} utils.ErrorResponse
// @Router /api/bookings/pending/{token} [get]
func (h *BookingHandler) GetPendingBooking(c *fiber.Ctx) error {
	p, err := h.bookings.Pending(c.UserContext(), c.Params("token"))
	if err != nil {
		return respondError(c, err, "Failed to load booking")
	}
	return c.JSON(p)
}

// ConfirmBooking godoc
// @Summary Book a held slot for the client
// @Tags bookings
// @Accept json
// @Produce json
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 410 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/bookings/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	var in confirmInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	a, err := h.bookings.Confirm(c.UserContext(), in.Token, in.ClientName, in.ClientPhone)
	if err != nil {
		return respondError(c, err, "Failed to create appointment")
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// CreateAppointment godoc
// @Summary Book a slot in one step
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body booking.Request true "Booking"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/appointments [post]
func (h *BookingHandler) CreateAppointment(c *fiber.Ctx) error {
	var req booking.Request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	a, err := h.bookings.Book(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create appointment")
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetAppointmentsByPhone godoc
// @Summary Every appointment booked with a phone number
// @Tags appointments
// @Produce json
// @Param phone query string true "Client phone"
// @Success 200 {array} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/appointments [get]
func (h *BookingHandler) GetAppointmentsByPhone(c *fiber.Ctx) error {
	list, err := h.bookings.ByPhone(c.UserContext(), c.Query("phone"))
	if err != nil {
		return respondError(c, err, "Failed to fetch appointments")
	}
	return c.JSON(fiber.Map{
		"phone":        utils.FormatPhone(utils.DigitsOnly(c.Query("phone"))),
		"appointments": list,
	})
}

// GetRecentAppointments godoc
// @Summary Upcoming scheduled appointments for a phone
// @Tags appointments
// @Produce json
// @Param phone query string true "Client phone"
// @Success 200 {array} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/appointments/recent [get]
func (h *BookingHandler) GetRecentAppointments(c *fiber.Ctx) error {
	list, err := h.bookings.Recent(c.UserContext(), c.Query("phone"))
	if err != nil {
		return respondError(c, err, "Failed to fetch appointments")
	}
	return c.JSON(list)
}

// CancelAppointment godoc
// @Summary Client cancels their own appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/appointments/{id}/cancel [patch]
func (h *BookingHandler) CancelAppointment(c *fiber.Ctx) error {
	var in cancelInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	a, err := h.bookings.Cancel(c.UserContext(), c.Params("id"), in.Phone)
	if err != nil {
		return respondError(c, err, "Failed to cancel appointment")
	}
	return c.JSON(a)
}
