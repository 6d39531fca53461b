package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/models"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ booking.CatalogStore = (*CatalogRepository)(nil)

func (r *CatalogRepository) GetService(ctx context.Context, id string) (models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return s, notFound(err)
}

func (r *CatalogRepository) GetProfessional(ctx context.Context, id string) (models.Professional, error) {
	var p models.Professional
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return p, notFound(err)
}

// ServiceWithProfessionals loads a service and the professionals linked to it.
func (r *CatalogRepository) ServiceWithProfessionals(ctx context.Context, id string) (models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Preload("Professionals").Where("id = ?", id).First(&s).Error
	return s, notFound(err)
}

// ListServices returns services by name. professionalID limits the list to
// services that professional is linked to.
func (r *CatalogRepository) ListServices(ctx context.Context, activeOnly bool, professionalID string) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{})
	if activeOnly {
		q = q.Where("services.active = ?", true)
	}
	if professionalID != "" {
		q = q.Joins("JOIN professional_services ps ON ps.service_id = services.id").
			Where("ps.professional_id = ?", professionalID)
	}
	list := []models.Service{}
	err := q.Order("services.category, services.name").Find(&list).Error
	return list, err
}

func (r *CatalogRepository) ListProfessionals(ctx context.Context, activeOnly bool) ([]models.Professional, error) {
	q := r.db.WithContext(ctx).Preload("Services")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	list := []models.Professional{}
	err := q.Order("name").Find(&list).Error
	return list, err
}

// ProfessionalsForService returns the active professionals linked to a
// service. A service nobody is linked to can be done by any active
// professional.
func (r *CatalogRepository) ProfessionalsForService(ctx context.Context, serviceID string) ([]models.Professional, error) {
	s, err := r.ServiceWithProfessionals(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if len(s.Professionals) == 0 {
		return r.ListProfessionals(ctx, true)
	}
	list := make([]models.Professional, 0, len(s.Professionals))
	for _, p := range s.Professionals {
		if p.Active {
			list = append(list, p)
		}
	}
	return list, nil
}

// SaveService creates or updates s and replaces its professional links.
func (r *CatalogRepository) SaveService(ctx context.Context, s *models.Service, professionalIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := save(tx, s, s.ID); err != nil {
			return err
		}
		// active has a column default, so false has to be written explicitly.
		if err := tx.Model(s).Update("active", s.Active).Error; err != nil {
			return err
		}
		if professionalIDs == nil {
			return nil
		}
		profs, err := findAll[models.Professional](tx, professionalIDs)
		if err != nil {
			return err
		}
		return tx.Model(s).Association("Professionals").Replace(profs)
	})
}

// SaveProfessional creates or updates p and replaces its service links.
func (r *CatalogRepository) SaveProfessional(ctx context.Context, p *models.Professional, serviceIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := save(tx, p, p.ID); err != nil {
			return err
		}
		if err := tx.Model(p).Update("active", p.Active).Error; err != nil {
			return err
		}
		if serviceIDs == nil {
			return nil
		}
		services, err := findAll[models.Service](tx, serviceIDs)
		if err != nil {
			return err
		}
		return tx.Model(p).Association("Services").Replace(services)
	})
}

func (r *CatalogRepository) SetPhotoURL(ctx context.Context, professionalID, url string) error {
	res := r.db.WithContext(ctx).Model(&models.Professional{}).
		Where("id = ?", professionalID).
		Update("photo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteService(ctx context.Context, id string) error {
	return r.deleteUnreferenced(ctx, &models.Service{ID: id}, "service_id", id, &models.Appointment{})
}

// DeleteProfessional refuses while appointments or admin accounts point at the
// professional.
func (r *CatalogRepository) DeleteProfessional(ctx context.Context, id string) error {
	return r.deleteUnreferenced(ctx, &models.Professional{ID: id}, "professional_id", id, &models.Appointment{}, &models.Admin{})
}

// deleteUnreferenced removes row and its link rows unless a row of one of refs
// points at it through column.
func (r *CatalogRepository) deleteUnreferenced(ctx context.Context, row interface{}, column, id string, refs ...interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ref := range refs {
			var count int64
			if err := tx.Model(ref).Where(column+" = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrInUse
			}
		}
		if err := tx.Exec("DELETE FROM professional_services WHERE "+column+" = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(row)
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return ErrInUse
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return booking.ErrNotFound
		}
		return nil
	})
}

// save inserts row when id is empty and otherwise updates the existing row.
func save(tx *gorm.DB, row interface{}, id string) error {
	if id == "" {
		return duplicate(tx.Create(row).Error)
	}
	res := tx.Model(row).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return duplicate(res.Error)
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func findAll[T any](tx *gorm.DB, ids []string) ([]T, error) {
	rows := []T{}
	if len(ids) == 0 {
		return rows, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, fmt.Errorf("%w: unknown id in %v", booking.ErrNotFound, ids)
	}
	return rows, nil
}
