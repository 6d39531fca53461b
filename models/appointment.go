package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is one booked slot. AppointmentDate is "YYYY-MM-DD" and
// AppointmentTime is "HH:MM" on the 30 minute grid; both are stored as text so
// that lexical order matches chronological order.
type Appointment struct {
	ID              string            `json:"id" gorm:"type:uuid;primaryKey"`
	ServiceID       string            `json:"service_id" gorm:"type:uuid;not null;index"`
	Service         *Service          `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	ProfessionalID  string            `json:"professional_id" gorm:"type:uuid;not null;index:idx_appointments_professional_day"`
	Professional    *Professional     `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
	ClientName      string            `json:"client_name" gorm:"not null"`
	ClientPhone     string            `json:"client_phone" gorm:"size:11;not null;index"`
	AppointmentDate string            `json:"appointment_date" gorm:"type:char(10);not null;index:idx_appointments_professional_day"`
	AppointmentTime string            `json:"appointment_time" gorm:"type:char(5);not null"`
	Status          AppointmentStatus `json:"status" gorm:"size:20;not null;default:'scheduled';index"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// IsTerminal reports whether no further status change is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ValidateTransition checks a status change against the lifecycle:
// scheduled -> completed | cancelled, nothing out of completed or cancelled.
func ValidateTransition(from, to AppointmentStatus) error {
	switch from {
	case StatusScheduled:
		if to != StatusCompleted && to != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", to)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", from)
	default:
		return fmt.Errorf("unknown status %q", from)
	}
	return nil
}

// ParseStatus accepts only the three lifecycle values.
func ParseStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
