package booking

import "errors"

var (
	ErrValidation        = errors.New("invalid booking request")
	ErrNotFound          = errors.New("not found")
	ErrSlotTaken         = errors.New("this time slot was just taken, please choose another one")
	ErrSlotPassed        = errors.New("this time slot is no longer bookable")
	ErrInvalidTransition = errors.New("appointment status cannot change")
	ErrPendingExpired    = errors.New("booking selection expired, please choose a time again")
	ErrUnavailable       = errors.New("service temporarily unavailable, please try again")
)
