package booking

import (
	"errors"
	"time"

	"tripnest/internal/domain/shared/daterange"
)

var (
	ErrPastDate          = errors.New("booking: check-in date is in the past")
	ErrInvalidGuestCount = errors.New("booking: guest count out of range")
)

// DefaultMaxGuests mirrors the request validation limit of the booking form.
const DefaultMaxGuests = 20

// ValidateCheckIn rejects ranges starting before today (midnight compare),
// unless the past-date policy is disabled.
func ValidateCheckIn(dr daterange.DateRange, now time.Time, allowPast bool) error {
	if allowPast {
		return nil
	}
	if dr.CheckIn.Before(daterange.Midnight(now)) {
		return ErrPastDate
	}
	return nil
}

// ValidateGuests enforces 1 <= guests <= max.
func ValidateGuests(guests, max int) error {
	if max <= 0 {
		max = DefaultMaxGuests
	}
	if guests < 1 || guests > max {
		return ErrInvalidGuestCount
	}
	return nil
}
