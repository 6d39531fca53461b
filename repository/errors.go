package repository

import (
	"errors"

	"github.com/meinhoongagan/salon-booking/booking"
	"gorm.io/gorm"
)

var (
	// ErrInUse is returned when a row cannot be deleted because appointments
	// or admin accounts still reference it.
	ErrInUse = errors.New("record is still referenced by appointments or admins")
	// ErrDuplicate is returned for unique violations outside the slot index.
	ErrDuplicate = errors.New("record already exists")
)

// notFound maps gorm's "no row" to the domain not-found error and passes every
// other error through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return booking.ErrNotFound
	}
	return err
}
