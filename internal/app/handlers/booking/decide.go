package booking

import (
	"context"
	"log/slog"
	"time"

	"tripnest/internal/app/auth"
	"tripnest/internal/app/commands"
	"tripnest/internal/app/outbox"
	"tripnest/internal/app/uow"
	domainbooking "tripnest/internal/domain/booking"
)

const (
	approveBookingKey = "booking.approve"
	rejectBookingKey  = "booking.reject"
)

type ApproveBookingCommand struct {
	BookingID string
	Actor     auth.Principal
}

func (c ApproveBookingCommand) Key() string { return approveBookingKey }

type RejectBookingCommand struct {
	BookingID string
	Actor     auth.Principal
}

func (c RejectBookingCommand) Key() string { return rejectBookingKey }

type DecisionResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// ApproveBookingHandler moves a pending booking to confirmed. Requires
// the administrative capability.
type ApproveBookingHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Logger     *slog.Logger
}

func (h *ApproveBookingHandler) Handle(ctx context.Context, cmd ApproveBookingCommand) (*DecisionResult, error) {
	return transition(ctx, h.UoWFactory, h.Outbox, h.Encoder, cmd.Actor, cmd.BookingID, h.Logger, "booking approved",
		func(b *domainbooking.Booking, now time.Time) error { return b.Approve(now) })
}

// RejectBookingHandler declines a pending booking; the rejected booking
// no longer holds the calendar.
type RejectBookingHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Logger     *slog.Logger
}

func (h *RejectBookingHandler) Handle(ctx context.Context, cmd RejectBookingCommand) (*DecisionResult, error) {
	return transition(ctx, h.UoWFactory, h.Outbox, h.Encoder, cmd.Actor, cmd.BookingID, h.Logger, "booking rejected",
		func(b *domainbooking.Booking, now time.Time) error { return b.Reject(now) })
}

// transition loads a booking, applies an admin decision and persists it
// with its events in one unit of work.
func transition(
	ctx context.Context,
	factory uow.Factory,
	box outbox.Outbox,
	encoder outbox.EventEncoder,
	actor auth.Principal,
	bookingID string,
	logger *slog.Logger,
	logMsg string,
	apply func(*domainbooking.Booking, time.Time) error,
) (*DecisionResult, error) {
	if !actor.IsAdmin() {
		return nil, domainbooking.ErrUnauthorized
	}

	unit, err := factory.Begin(ctx, uow.TxOptions{})
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

	record, err := unit.Bookings().ByID(execCtx, domainbooking.BookingID(bookingID))
	if err != nil {
		return nil, err
	}
	if err := apply(record, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(execCtx, record); err != nil {
		return nil, err
	}

	pending := record.PendingEvents()
	record.ClearEvents()
	if encoder == nil {
		encoder = outbox.JSONEventEncoder{}
	}
	if err := outbox.RecordDomainEvents(execCtx, box, encoder, pending); err != nil {
		return nil, err
	}

	if err := unit.Commit(execCtx); err != nil {
		return nil, err
	}
	committed = true

	if logger != nil {
		logger.Info(logMsg, "booking_id", record.ID, "actor", actor.UserID, "status", record.Status)
	}

	return &DecisionResult{BookingID: string(record.ID), Status: string(record.Status)}, nil
}

var _ commands.Handler[ApproveBookingCommand, *DecisionResult] = (*ApproveBookingHandler)(nil)
var _ commands.Handler[RejectBookingCommand, *DecisionResult] = (*RejectBookingHandler)(nil)
