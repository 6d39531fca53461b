package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Email       *string    `json:"email" gorm:"uniqueIndex"`
	Phone       *string    `json:"phone"`
	Specialties StringList `json:"specialties" gorm:"type:jsonb;not null;default:'[]'"`
	PhotoURL    string     `json:"photo_url"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	Services    []Service  `json:"services,omitempty" gorm:"many2many:professional_services;"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Specialties == nil {
		p.Specialties = StringList{}
	}
	return nil
}
