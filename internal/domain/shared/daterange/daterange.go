package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: check-out must be after check-in")

// DateRange represents a half-open stay interval [CheckIn, CheckOut).
// Both endpoints are normalized to UTC midnight; time-of-day carried by
// the caller is discarded.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a validated range from raw timestamps.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Midnight(checkIn), CheckOut: Midnight(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Midnight truncates a timestamp to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts billable nights, rounding any partial day up.
func (dr DateRange) Nights() int {
	const day = 24 * time.Hour
	diff := dr.CheckOut.Sub(dr.CheckIn)
	nights := int(diff / day)
	if diff%day != 0 {
		nights++
	}
	return nights
}

// Overlaps reports whether two half-open intervals share at least one
// night. A check-out on day X never conflicts with a check-in on day X.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// ContainsDate reports whether t falls inside the range.
func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.CheckIn) && t.Before(dr.CheckOut)
}
