package db

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/meinhoongagan/salon-booking/models"
	"gorm.io/gorm"
)

// scheduledSlotIndex allows one scheduled appointment per professional, date
// and time. Cancelled and completed rows do not count.
const scheduledSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_scheduled_slot
	ON appointments (professional_id, appointment_date, appointment_time)
	WHERE status = 'scheduled'`

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Service{},
		&models.Professional{},
		&models.Appointment{},
		&models.Admin{},
	)
	if err != nil {
		return err
	}
	if err := db.Exec(scheduledSlotIndex).Error; err != nil {
		return err
	}

	log.Info("✅ Migrations applied successfully!")
	return nil
}
