package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/utils"
)

const recentLimit = 2

// Selection is the service, professional, date and time a client picked.
type Selection struct {
	ServiceID      string `json:"service_id"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

// PendingBooking is a selection parked between the slot step and the
// confirmation step.
type PendingBooking struct {
	Token string `json:"token"`
	Selection
	CreatedAt time.Time `json:"created_at"`
}

// Request is a complete booking: a selection plus the client's details.
type Request struct {
	Selection
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

type Options struct {
	Location   *time.Location
	WindowDays int
	PendingTTL time.Duration
	Now        func() time.Time
	Notifier   Notifier
}

type Service struct {
	appointments AppointmentStore
	catalog      CatalogStore
	pending      PendingStore
	notifier     Notifier
	loc          *time.Location
	windowDays   int
	pendingTTL   time.Duration
	now          func() time.Time
}

func NewService(appointments AppointmentStore, catalog CatalogStore, pending PendingStore, opts Options) *Service {
	s := &Service{
		appointments: appointments,
		catalog:      catalog,
		pending:      pending,
		notifier:     opts.Notifier,
		loc:          opts.Location,
		windowDays:   opts.WindowDays,
		pendingTTL:   opts.PendingTTL,
		now:          opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.windowDays <= 0 {
		s.windowDays = 14
	}
	if s.pendingTTL <= 0 {
		s.pendingTTL = 30 * time.Minute
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Today is the current salon date.
func (s *Service) Today() string {
	return utils.Today(s.now(), s.loc)
}

// Availability returns the slot grid for a professional on date with booked
// and past slots marked.
func (s *Service) Availability(ctx context.Context, professionalID, date string) (DayAvailability, error) {
	if professionalID == "" {
		return DayAvailability{}, invalid("professional_id is required")
	}
	if err := s.checkDate(date); err != nil {
		return DayAvailability{}, err
	}
	if _, err := s.activeProfessional(ctx, professionalID); err != nil {
		return DayAvailability{}, err
	}

	return s.day(ctx, professionalID, date)
}

func (s *Service) day(ctx context.Context, professionalID, date string) (DayAvailability, error) {
	booked, err := s.appointments.BookedTimes(ctx, professionalID, date)
	if err != nil {
		log.Errorw("failed to load booked times", "professional_id", professionalID, "date", date, "error", err)
		return DayAvailability{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	now := s.now().In(s.loc)
	return Filter(Slots(), booked, date, utils.Today(now, s.loc), now), nil
}

// Hold validates a selection against current availability and parks it under a
// fresh token for the confirmation step.
func (s *Service) Hold(ctx context.Context, sel Selection) (PendingBooking, error) {
	if err := s.checkSelection(sel); err != nil {
		return PendingBooking{}, err
	}
	if _, _, err := s.activeCatalog(ctx, sel.ServiceID, sel.ProfessionalID); err != nil {
		return PendingBooking{}, err
	}

	day, err := s.day(ctx, sel.ProfessionalID, sel.Date)
	if err != nil {
		return PendingBooking{}, err
	}
	switch st, _ := day.StateOf(sel.Time); st {
	case SlotBooked:
		return PendingBooking{}, ErrSlotTaken
	case SlotPast:
		return PendingBooking{}, ErrSlotPassed
	}

	p := PendingBooking{
		Token:     uuid.NewString(),
		Selection: sel,
		CreatedAt: s.now(),
	}
	if err := s.pending.Save(ctx, p, s.pendingTTL); err != nil {
		log.Errorw("failed to store pending booking", "error", err)
		return PendingBooking{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return p, nil
}

// Pending returns a parked selection.
func (s *Service) Pending(ctx context.Context, token string) (PendingBooking, error) {
	if token == "" {
		return PendingBooking{}, ErrPendingExpired
	}
	p, err := s.pending.Load(ctx, token)
	if err != nil {
		if errors.Is(err, ErrPendingExpired) {
			return PendingBooking{}, err
		}
		log.Errorw("failed to load pending booking", "error", err)
		return PendingBooking{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return p, nil
}

// Confirm books a parked selection for the client. The token is discarded once
// the booking succeeds or once the selection can no longer succeed.
func (s *Service) Confirm(ctx context.Context, token, clientName, clientPhone string) (models.Appointment, error) {
	p, err := s.Pending(ctx, token)
	if err != nil {
		return models.Appointment{}, err
	}

	a, err := s.Book(ctx, Request{Selection: p.Selection, ClientName: clientName, ClientPhone: clientPhone})
	switch {
	case err == nil, errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotPassed), errors.Is(err, ErrNotFound):
		if derr := s.pending.Delete(ctx, token); derr != nil {
			log.Warnw("failed to discard pending booking", "error", derr)
		}
	}
	return a, err
}

// Book creates a scheduled appointment. The slot is re-checked right before
// the insert; the insert itself may still lose to a concurrent booking, which
// the store reports as ErrSlotTaken.
func (s *Service) Book(ctx context.Context, req Request) (models.Appointment, error) {
	name := strings.TrimSpace(req.ClientName)
	phone := utils.DigitsOnly(req.ClientPhone)
	if name == "" {
		return models.Appointment{}, invalid("client_name is required")
	}
	if !utils.ValidPhone(phone) {
		return models.Appointment{}, invalid("client_phone must have 10 or 11 digits")
	}
	if err := s.checkSelection(req.Selection); err != nil {
		return models.Appointment{}, err
	}

	svc, prof, err := s.activeCatalog(ctx, req.ServiceID, req.ProfessionalID)
	if err != nil {
		return models.Appointment{}, err
	}

	now := s.now().In(s.loc)
	if req.Date == utils.Today(now, s.loc) && slotMinute(req.Time) <= now.Hour()*60+now.Minute()+LeadTime {
		return models.Appointment{}, ErrSlotPassed
	}

	taken, err := s.appointments.ScheduledExists(ctx, req.ProfessionalID, req.Date, req.Time)
	if err != nil {
		log.Errorw("failed to revalidate slot", "professional_id", req.ProfessionalID, "date", req.Date, "time", req.Time, "error", err)
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if taken {
		return models.Appointment{}, ErrSlotTaken
	}

	a := models.Appointment{
		ServiceID:       req.ServiceID,
		ProfessionalID:  req.ProfessionalID,
		ClientName:      name,
		ClientPhone:     phone,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time,
		Status:          models.StatusScheduled,
	}
	if err := s.appointments.Create(ctx, &a); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			log.Infow("slot taken at insert", "professional_id", req.ProfessionalID, "date", req.Date, "time", req.Time)
			return models.Appointment{}, ErrSlotTaken
		}
		log.Errorw("failed to create appointment", "error", err)
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if s.notifier != nil {
		if err := s.notifier.BookingCreated(ctx, a, svc, prof); err != nil {
			log.Warnw("failed to notify professional", "appointment_id", a.ID, "error", err)
		}
	}
	return a, nil
}

// Cancel is the client's own cancellation; phone must match the booking.
func (s *Service) Cancel(ctx context.Context, id, phone string) (models.Appointment, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return models.Appointment{}, err
	}
	if digits := utils.DigitsOnly(phone); digits == "" || digits != a.ClientPhone {
		return models.Appointment{}, ErrNotFound
	}
	return s.transition(ctx, a, models.StatusCancelled)
}

// SetStatus is the admin transition to completed or cancelled.
func (s *Service) SetStatus(ctx context.Context, id string, to models.AppointmentStatus) (models.Appointment, error) {
	if to != models.StatusCompleted && to != models.StatusCancelled {
		return models.Appointment{}, invalid("status must be completed or cancelled")
	}
	a, err := s.get(ctx, id)
	if err != nil {
		return models.Appointment{}, err
	}
	return s.transition(ctx, a, to)
}

// AutoComplete marks scheduled appointments dated before today as completed.
func (s *Service) AutoComplete(ctx context.Context) (int64, error) {
	n, err := s.appointments.CompletePast(ctx, s.Today())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return n, nil
}

// ByPhone lists every appointment booked with phone.
func (s *Service) ByPhone(ctx context.Context, phone string) ([]models.Appointment, error) {
	digits := utils.DigitsOnly(phone)
	if !utils.ValidPhone(digits) {
		return nil, invalid("phone must have 10 or 11 digits")
	}
	list, err := s.appointments.ListByPhone(ctx, digits)
	if err != nil {
		log.Errorw("failed to list appointments by phone", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return list, nil
}

// Recent lists the next scheduled appointments booked with phone.
func (s *Service) Recent(ctx context.Context, phone string) ([]models.Appointment, error) {
	digits := utils.DigitsOnly(phone)
	if !utils.ValidPhone(digits) {
		return nil, invalid("phone must have 10 or 11 digits")
	}
	list, err := s.appointments.ListUpcomingByPhone(ctx, digits, s.Today(), recentLimit)
	if err != nil {
		log.Errorw("failed to list recent appointments", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return list, nil
}

func (s *Service) transition(ctx context.Context, a models.Appointment, to models.AppointmentStatus) (models.Appointment, error) {
	if err := models.ValidateTransition(a.Status, to); err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	ok, err := s.appointments.TransitionStatus(ctx, a.ID, a.Status, to)
	if err != nil {
		log.Errorw("failed to update appointment status", "appointment_id", a.ID, "error", err)
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !ok {
		// Someone else moved it out of a.Status first.
		return models.Appointment{}, ErrInvalidTransition
	}
	a.Status = to
	return a, nil
}

func (s *Service) get(ctx context.Context, id string) (models.Appointment, error) {
	if id == "" {
		return models.Appointment{}, ErrNotFound
	}
	a, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Appointment{}, err
		}
		log.Errorw("failed to load appointment", "appointment_id", id, "error", err)
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return a, nil
}

func (s *Service) checkSelection(sel Selection) error {
	if sel.ServiceID == "" || sel.ProfessionalID == "" {
		return invalid("service_id and professional_id are required")
	}
	if err := s.checkDate(sel.Date); err != nil {
		return err
	}
	if !OnGrid(sel.Time) {
		return invalid("time must be between 09:00 and 17:30 in 30 minute steps")
	}
	return nil
}

// checkDate accepts dates from today up to the end of the booking window.
func (s *Service) checkDate(date string) error {
	d, err := time.ParseInLocation(utils.DateLayout, date, s.loc)
	if err != nil {
		return invalid("date must be YYYY-MM-DD")
	}
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if d.Before(today) {
		return invalid("date is in the past")
	}
	if !d.Before(today.AddDate(0, 0, s.windowDays)) {
		return invalid(fmt.Sprintf("date must be within the next %d days", s.windowDays))
	}
	return nil
}

func (s *Service) activeCatalog(ctx context.Context, serviceID, professionalID string) (models.Service, models.Professional, error) {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		return models.Service{}, models.Professional{}, s.lookupErr("service", err)
	}
	if !svc.Active {
		return models.Service{}, models.Professional{}, fmt.Errorf("%w: service is no longer offered", ErrNotFound)
	}
	prof, err := s.activeProfessional(ctx, professionalID)
	if err != nil {
		return models.Service{}, models.Professional{}, err
	}
	return svc, prof, nil
}

func (s *Service) activeProfessional(ctx context.Context, id string) (models.Professional, error) {
	prof, err := s.catalog.GetProfessional(ctx, id)
	if err != nil {
		return models.Professional{}, s.lookupErr("professional", err)
	}
	if !prof.Active {
		return models.Professional{}, fmt.Errorf("%w: professional is no longer available", ErrNotFound)
	}
	return prof, nil
}

func (s *Service) lookupErr(what string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	log.Errorw("catalog lookup failed", "entity", what, "error", err)
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
