package repository

import (
	"context"
	"strings"

	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/models"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&a).Error
	return a, notFound(err)
}

func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	list := []models.Admin{}
	err := r.db.WithContext(ctx).Preload("Professional").Order("created_at").Find(&list).Error
	return list, err
}

// Create stores a new admin. A plain admin created without a professional
// gets a new active professional with the same name and email.
func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.Role == models.RoleAdmin && a.ProfessionalID == nil {
			email := a.Email
			p := models.Professional{Name: a.Name, Email: &email, Active: true}
			if err := tx.Create(&p).Error; err != nil {
				return duplicate(err)
			}
			a.ProfessionalID = &p.ID
			a.Professional = &p
		} else if a.ProfessionalID != nil {
			var count int64
			if err := tx.Model(&models.Professional{}).Where("id = ?", *a.ProfessionalID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return booking.ErrNotFound
			}
		}
		return duplicate(tx.Omit("Professional").Create(a).Error)
	})
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}
