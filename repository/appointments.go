package repository

import (
	"context"
	"errors"

	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/models"
	"gorm.io/gorm"
)

// AppointmentFilter narrows the admin agenda. Empty fields do not filter.
type AppointmentFilter struct {
	ProfessionalID string
	Status         models.AppointmentStatus
	From           string
	To             string
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ booking.AppointmentStore = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) scheduled(ctx context.Context, professionalID, date string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("professional_id = ? AND appointment_date = ? AND status = ?", professionalID, date, models.StatusScheduled)
}

func (r *AppointmentRepository) BookedTimes(ctx context.Context, professionalID, date string) ([]string, error) {
	times := []string{}
	err := r.scheduled(ctx, professionalID, date).
		Order("appointment_time").
		Pluck("appointment_time", &times).Error
	return times, err
}

func (r *AppointmentRepository) ScheduledExists(ctx context.Context, professionalID, date, slot string) (bool, error) {
	var count int64
	err := r.scheduled(ctx, professionalID, date).
		Where("appointment_time = ?", slot).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a. The partial unique index on scheduled slots turns a lost
// race into booking.ErrSlotTaken.
func (r *AppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	err := r.db.WithContext(ctx).Create(a).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return booking.ErrSlotTaken
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return booking.ErrNotFound
	}
	return err
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (models.Appointment, error) {
	var a models.Appointment
	err := r.db.WithContext(ctx).Preload("Service").Preload("Professional").
		Where("id = ?", id).First(&a).Error
	return a, notFound(err)
}

func (r *AppointmentRepository) TransitionStatus(ctx context.Context, id string, from, to models.AppointmentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

func (r *AppointmentRepository) CompletePast(ctx context.Context, today string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("status = ? AND appointment_date < ?", models.StatusScheduled, today).
		Update("status", models.StatusCompleted)
	return res.RowsAffected, res.Error
}

func (r *AppointmentRepository) ListByPhone(ctx context.Context, phone string) ([]models.Appointment, error) {
	list := []models.Appointment{}
	err := r.withRefs(ctx).
		Where("client_phone = ?", phone).
		Order("appointment_date, appointment_time").
		Find(&list).Error
	return list, err
}

func (r *AppointmentRepository) ListUpcomingByPhone(ctx context.Context, phone, fromDate string, limit int) ([]models.Appointment, error) {
	list := []models.Appointment{}
	err := r.withRefs(ctx).
		Where("client_phone = ? AND status = ? AND appointment_date >= ?", phone, models.StatusScheduled, fromDate).
		Order("appointment_date, appointment_time").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// List returns the admin agenda in chronological order.
func (r *AppointmentRepository) List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	q := r.withRefs(ctx)
	if f.ProfessionalID != "" {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != "" {
		q = q.Where("appointment_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("appointment_date <= ?", f.To)
	}

	list := []models.Appointment{}
	err := q.Order("appointment_date, appointment_time").Find(&list).Error
	return list, err
}

// Dates returns the distinct appointment dates, optionally for one
// professional.
func (r *AppointmentRepository) Dates(ctx context.Context, professionalID string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if professionalID != "" {
		q = q.Where("professional_id = ?", professionalID)
	}
	dates := []string{}
	err := q.Distinct().Order("appointment_date DESC").Pluck("appointment_date", &dates).Error
	return dates, err
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Service").Preload("Professional")
}
