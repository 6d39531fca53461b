package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string         `json:"name" gorm:"not null"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;default:30"`
	Price           float64        `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Category        string         `json:"category" gorm:"default:'General'"`
	Active          bool           `json:"active" gorm:"not null;default:true"`
	Professionals   []Professional `json:"professionals,omitempty" gorm:"many2many:professional_services;"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
