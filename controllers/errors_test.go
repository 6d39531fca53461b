package controllers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/reports"
	"github.com/meinhoongagan/salon-booking/repository"
	"github.com/meinhoongagan/salon-booking/utils"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name is required", booking.ErrValidation), fiber.StatusBadRequest},
		{reports.ErrInvalidMonth, fiber.StatusBadRequest},
		{repository.ErrDuplicate, fiber.StatusBadRequest},
		{fmt.Errorf("%w: service", booking.ErrNotFound), fiber.StatusNotFound},
		{booking.ErrSlotTaken, fiber.StatusConflict},
		{booking.ErrSlotPassed, fiber.StatusConflict},
		{booking.ErrInvalidTransition, fiber.StatusConflict},
		{repository.ErrInUse, fiber.StatusConflict},
		{booking.ErrPendingExpired, fiber.StatusGone},
		{fmt.Errorf("%w: %w", booking.ErrUnavailable, errors.New("timeout")), fiber.StatusServiceUnavailable},
		{utils.ErrUploadsDisabled, fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRootMessage(t *testing.T) {
	err := fmt.Errorf("%w: no transitions allowed from completed", booking.ErrInvalidTransition)
	if got := rootMessage(err); got != booking.ErrInvalidTransition.Error() {
		t.Fatalf("rootMessage = %q", got)
	}
}

func TestRespondError_HidesInfrastructureText(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unavailable", fmt.Errorf("%w: %w", booking.ErrUnavailable, errors.New("dial tcp 10.0.0.5:5432: connection refused")), fiber.StatusServiceUnavailable, booking.ErrUnavailable.Error()},
		{"uploads disabled", utils.ErrUploadsDisabled, fiber.StatusServiceUnavailable, utils.ErrUploadsDisabled.Error()},
		{"internal", errors.New("pq: relation \"appointments\" does not exist"), fiber.StatusInternalServerError, "Failed to fetch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err, "Failed to fetch") })

			resp := do(t, app, "GET", "/", "", "")
			expectStatus(t, resp, tt.status)
			var body utils.ErrorResponse
			decode(t, resp, &body)
			if body.Message != tt.message {
				t.Fatalf("message = %q, want %q", body.Message, tt.message)
			}
			if strings.Contains(body.Error, "10.0.0.5") || strings.Contains(body.Error, "relation") {
				t.Fatalf("infrastructure text leaked: %q", body.Error)
			}
		})
	}
}
