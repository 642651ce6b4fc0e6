package service

import (
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// decide returns the status a waiting booking moves to. Decided bookings are final.
func decide(current models.BookingStatus, approve bool) (models.BookingStatus, error) {
	if current.Terminal() {
		return current, fmt.Errorf("%w: booking is already %s", domain.ErrInvalidState, current)
	}
	if approve {
		return models.StatusApproved, nil
	}
	return models.StatusRejected, nil
}

// validateInterval checks a requested booking window against now.
func validateInterval(start, end, now time.Time) error {
	switch {
	case start.Before(now):
		return fmt.Errorf("%w: booking start is in the past", domain.ErrInvalidArgument)
	case !end.After(start):
		return fmt.Errorf("%w: booking end must be after start", domain.ErrInvalidArgument)
	case end.Before(now):
		return fmt.Errorf("%w: booking end is in the past", domain.ErrInvalidArgument)
	}
	return nil
}
