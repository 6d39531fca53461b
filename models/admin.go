package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin is a dashboard user. A plain admin is tied to one professional and
// only sees that professional's agenda.
type Admin struct {
	ID             string        `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   string        `json:"-" gorm:"not null"`
	Name           string        `json:"name" gorm:"not null"`
	Role           string        `json:"role" gorm:"size:20;not null;default:'admin'"`
	ProfessionalID *string       `json:"professional_id" gorm:"type:uuid"`
	Professional   *Professional `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return nil
}

// ScopedProfessional returns the professional an admin is restricted to, or
// "" when the admin sees every professional.
func (a Admin) ScopedProfessional() string {
	if a.Role == RoleAdmin && a.ProfessionalID != nil {
		return *a.ProfessionalID
	}
	return ""
}
