package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/reports"
	"github.com/meinhoongagan/salon-booking/repository"
)

// ReportHandler serves the monthly dashboard reports. Plain admins only see
// their own professional's numbers.
type ReportHandler struct {
	appointments appointmentRepository
}

func NewReportHandler(appointments appointmentRepository) *ReportHandler {
	return &ReportHandler{appointments: appointments}
}

// GetMonths godoc
// @Summary Months that have appointments, newest first
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /api/admin/reports/months [get]
func (h *ReportHandler) GetMonths(c *fiber.Ctx) error {
	dates, err := h.appointments.Dates(c.UserContext(), middleware.CurrentAdmin(c).ScopedProfessional())
	if err != nil {
		return respondError(c, err, "Failed to fetch months")
	}
	return c.JSON(reports.AvailableMonths(dates))
}

// GetMonthlyReport godoc
// @Summary Monthly totals and service ranking
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} reports.Monthly
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/admin/reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	month := c.Query("month")
	list, err := h.monthAppointments(c, month)
	if err != nil {
		return respondError(c, err, "Failed to build report")
	}
	return c.JSON(reports.MonthlyReport(month, list))
}

// GetServiceReport godoc
// @Summary Per-professional breakdown of one service in a month
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param name path string true "Service name"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} reports.ServiceDetail
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/admin/reports/monthly/services/{name} [get]
func (h *ReportHandler) GetServiceReport(c *fiber.Ctx) error {
	month := c.Query("month")
	list, err := h.monthAppointments(c, month)
	if err != nil {
		return respondError(c, err, "Failed to build report")
	}
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		name = c.Params("name")
	}
	return c.JSON(reports.ServiceBreakdown(month, name, list))
}

func (h *ReportHandler) monthAppointments(c *fiber.Ctx, month string) ([]models.Appointment, error) {
	first, last, err := reports.MonthRange(month)
	if err != nil {
		return nil, err
	}
	return h.appointments.List(c.UserContext(), repository.AppointmentFilter{
		ProfessionalID: middleware.CurrentAdmin(c).ScopedProfessional(),
		From:           first,
		To:             last,
	})
}
