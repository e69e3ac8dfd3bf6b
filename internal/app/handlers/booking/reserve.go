package booking

import (
	"context"
	"log/slog"
	"time"

	"tripnest/internal/app/commands"
	"tripnest/internal/app/middleware"
	"tripnest/internal/app/outbox"
	"tripnest/internal/app/uow"
	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
	domainpricing "tripnest/internal/domain/pricing"
	domainrange "tripnest/internal/domain/shared/daterange"
)

const reserveBookingKey = "booking.reserve"

type ReserveBookingCommand struct {
	CommandID       string
	ListingID       string
	UserID          string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	IdempotencyKeyV string
}

func (c ReserveBookingCommand) Key() string { return reserveBookingKey }

func (c ReserveBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ReserveBookingCommand) ResultPrototype() any { return &ReserveBookingResult{} }

type ReserveBookingResult struct {
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	Nights    int       `json:"nights"`
	Total     int64     `json:"total"`
	Currency  string    `json:"currency"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
}

// ReserveBookingHandler validates a reservation request, prices it and
// persists the booking. Precondition order is fixed: listing existence,
// date range, past-date policy, guest count, availability.
type ReserveBookingHandler struct {
	UoWFactory     uow.Factory
	Pricing        domainpricing.Calculator
	Outbox         outbox.Outbox
	Encoder        outbox.EventEncoder
	Locks          *ListingLocks
	MaxGuests      int
	AllowPastDates bool
	Logger         *slog.Logger
}

func (h *ReserveBookingHandler) Handle(ctx context.Context, cmd ReserveBookingCommand) (*ReserveBookingResult, error) {
	if h.Locks != nil {
		release := h.Locks.Acquire(domainlistings.ListingID(cmd.ListingID))
		defer release()
	}

	unit, err := h.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	execCtx := ctx
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	execCtx = uow.ContextWithUnitOfWork(execCtx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(execCtx)
		}
	}()

	// The nightly rate is read in the same unit of work as the
	// availability check, so a mid-flight price change cannot split the
	// quote from the calendar state.
	listing, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}

	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := domainbooking.ValidateCheckIn(dr, now, h.AllowPastDates); err != nil {
		return nil, err
	}
	if err := domainbooking.ValidateGuests(cmd.Guests, h.MaxGuests); err != nil {
		return nil, err
	}

	taken, err := unit.Bookings().AnyOverlapping(execCtx, listing.ID, dr)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainbooking.ErrUnavailable
	}

	quote, err := h.Pricing.Quote(execCtx, listing, dr, cmd.Guests)
	if err != nil {
		return nil, err
	}

	record, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(cmd.CommandID),
		ListingID: listing.ID,
		UserID:    cmd.UserID,
		Range:     dr,
		Guests:    cmd.Guests,
		Total:     quote.Total,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(execCtx, record); err != nil {
		return nil, err
	}

	pending := record.PendingEvents()
	record.ClearEvents()
	if err := outbox.RecordDomainEvents(execCtx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if err := unit.Commit(execCtx); err != nil {
		return nil, err
	}
	committed = true

	if h.Logger != nil {
		h.Logger.Info("booking reserved", "booking_id", record.ID, "listing_id", record.ListingID, "user_id", record.UserID, "nights", quote.Nights, "total", quote.Total.Amount)
	}

	return &ReserveBookingResult{
		BookingID: string(record.ID),
		Status:    string(record.Status),
		Nights:    quote.Nights,
		Total:     quote.Total.Amount,
		Currency:  quote.Total.Currency,
		CheckIn:   dr.CheckIn,
		CheckOut:  dr.CheckOut,
	}, nil
}

func (h *ReserveBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[ReserveBookingCommand, *ReserveBookingResult] = (*ReserveBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*ReserveBookingCommand)(nil)
