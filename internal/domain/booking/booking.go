package booking

import (
	"context"
	"errors"
	"time"

	"tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/daterange"
	"tripnest/internal/domain/shared/events"
	"tripnest/internal/domain/shared/money"
)

var (
	ErrBookingNotFound   = errors.New("booking: not found")
	ErrInvalidTransition = errors.New("booking: invalid status transition")
	ErrUnavailable       = errors.New("booking: dates are not available")
	ErrUnauthorized      = errors.New("booking: actor not allowed")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

// HoldsCalendar reports whether a booking in this status blocks the
// listing's dates. Cancelled and rejected bookings release their hold.
func (s Status) HoldsCalendar() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is one reservation of a listing for a date range by a user.
type Booking struct {
	ID        BookingID
	ListingID listings.ListingID
	UserID    string
	Range     daterange.DateRange
	Guests    int
	Total     money.Money
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	// AnyOverlapping reports whether a calendar-holding booking for the
	// listing overlaps the half-open range.
	AnyOverlapping(ctx context.Context, listingID listings.ListingID, r daterange.DateRange) (bool, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	// ListAll returns every booking, newest first.
	ListAll(ctx context.Context) ([]*Booking, error)
}

type CreateParams struct {
	ID        BookingID
	ListingID listings.ListingID
	UserID    string
	Range     daterange.DateRange
	Guests    int
	Total     money.Money
	CreatedAt time.Time
}

// NewBooking creates a pending reservation. Date, guest and availability
// preconditions are the caller's responsibility; this constructor only
// guards invariants of the record itself.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.ID == "" {
		return nil, errors.New("booking: id required")
	}
	if params.UserID == "" {
		return nil, errors.New("booking: user id required")
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Total.Amount < 0 {
		return nil, errors.New("booking: total must be non-negative")
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:        params.ID,
		ListingID: params.ListingID,
		UserID:    params.UserID,
		Range:     params.Range,
		Guests:    params.Guests,
		Total:     params.Total,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.Record(BookingRequested{BookingID: b.ID, ListingID: b.ListingID, UserID: b.UserID, CheckIn: b.Range.CheckIn, CheckOut: b.Range.CheckOut, Guests: b.Guests, Total: b.Total, At: now})
	return b, nil
}

// Approve transitions a pending booking into the confirmed state.
func (b *Booking) Approve(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingApproved{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	return nil
}

// Reject declines a pending booking and releases its calendar hold.
func (b *Booking) Reject(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}
	b.Status = StatusRejected
	b.UpdatedAt = now.UTC()
	b.Record(BookingRejected{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	return nil
}

// Cancel withdraws a pending or confirmed booking. Terminal bookings are
// never resurrected; cancelling one fails with ErrInvalidTransition.
func (b *Booking) Cancel(now time.Time) error {
	switch b.Status {
	case StatusPending, StatusConfirmed:
	default:
		return ErrInvalidTransition
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	return nil
}

// OwnedBy reports whether the booking belongs to the given user.
func (b *Booking) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}
