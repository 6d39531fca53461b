package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/reports"
	"github.com/meinhoongagan/salon-booking/repository"
	"github.com/meinhoongagan/salon-booking/utils"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, reports.ErrInvalidMonth),
		errors.Is(err, repository.ErrDuplicate):
		return fiber.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrSlotPassed),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, repository.ErrInUse):
		return fiber.StatusConflict
	case errors.Is(err, booking.ErrPendingExpired):
		return fiber.StatusGone
	case errors.Is(err, booking.ErrUnavailable),
		errors.Is(err, utils.ErrUploadsDisabled):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as a utils.ErrorResponse. message is used for
// failures that have no domain meaning. Infrastructure error text is logged,
// never returned.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := statusOf(err)
	resp := utils.ErrorResponse{Message: message, Error: err.Error()}

	switch status {
	case fiber.StatusInternalServerError:
		log.Errorw(message, "path", c.Path(), "error", err)
		resp.Error = fiber.ErrInternalServerError.Message
	case fiber.StatusServiceUnavailable:
		log.Warnw(message, "path", c.Path(), "error", err)
		resp.Message = booking.ErrUnavailable.Error()
		if errors.Is(err, utils.ErrUploadsDisabled) {
			resp.Message = utils.ErrUploadsDisabled.Error()
		}
		resp.Error = fiber.ErrServiceUnavailable.Message
	case fiber.StatusConflict, fiber.StatusGone:
		// The sentinel text is what the client shows.
		resp.Message = rootMessage(err)
	}
	return c.Status(status).JSON(resp)
}

func rootMessage(err error) string {
	for _, target := range []error{
		booking.ErrSlotTaken,
		booking.ErrSlotPassed,
		booking.ErrInvalidTransition,
		booking.ErrPendingExpired,
		repository.ErrInUse,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
		Message: "Failed to parse request body",
		Error:   err.Error(),
	})
}
