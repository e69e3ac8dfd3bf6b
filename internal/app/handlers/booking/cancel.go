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

const cancelBookingKey = "booking.cancel"

type CancelBookingCommand struct {
	BookingID string
	Actor     auth.Principal
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

// CancelBookingHandler withdraws a pending or confirmed booking. The
// booking's owner may cancel their own; admins may cancel any.
type CancelBookingHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Logger     *slog.Logger
}

func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*DecisionResult, error) {
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

	record, err := unit.Bookings().ByID(execCtx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	if !record.OwnedBy(cmd.Actor.UserID) && !cmd.Actor.IsAdmin() {
		return nil, domainbooking.ErrUnauthorized
	}
	if err := record.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(execCtx, record); err != nil {
		return nil, err
	}

	pending := record.PendingEvents()
	record.ClearEvents()
	encoder := h.Encoder
	if encoder == nil {
		encoder = outbox.JSONEventEncoder{}
	}
	if err := outbox.RecordDomainEvents(execCtx, h.Outbox, encoder, pending); err != nil {
		return nil, err
	}

	if err := unit.Commit(execCtx); err != nil {
		return nil, err
	}
	committed = true

	if h.Logger != nil {
		h.Logger.Info("booking cancelled", "booking_id", record.ID, "actor", cmd.Actor.UserID)
	}

	return &DecisionResult{BookingID: string(record.ID), Status: string(record.Status)}, nil
}

var _ commands.Handler[CancelBookingCommand, *DecisionResult] = (*CancelBookingHandler)(nil)
