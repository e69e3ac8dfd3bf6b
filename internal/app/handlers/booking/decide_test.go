package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripnest/internal/app/auth"
	domainbooking "tripnest/internal/domain/booking"
)

var (
	adminActor = auth.Principal{UserID: "usr-admin", Roles: []string{auth.RoleAdmin}}
	guestActor = auth.Principal{UserID: "usr-guest"}
)

func reservePending(t *testing.T, fx *reserveFixture, id string) {
	t.Helper()
	_, err := fx.handler.Handle(context.Background(), reserveCmd(id, 10, 13, 2))
	require.NoError(t, err)
}

func TestApproveBooking(t *testing.T) {
	fx := newReserveFixture(t)
	reservePending(t, fx, "bkg-1")

	h := &ApproveBookingHandler{UoWFactory: fx.handler.UoWFactory, Outbox: fx.outbox}
	res, err := h.Handle(context.Background(), ApproveBookingCommand{BookingID: "bkg-1", Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, string(domainbooking.StatusConfirmed), res.Status)

	stored, err := fx.bookings.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusConfirmed, stored.Status)

	records := fx.outbox.Pending()
	require.Len(t, records, 2)
	assert.Equal(t, "booking.approved", records[1].Name)
}

func TestApproveRequiresAdmin(t *testing.T) {
	fx := newReserveFixture(t)
	reservePending(t, fx, "bkg-1")

	h := &ApproveBookingHandler{UoWFactory: fx.handler.UoWFactory, Outbox: fx.outbox}
	_, err := h.Handle(context.Background(), ApproveBookingCommand{BookingID: "bkg-1", Actor: guestActor})
	assert.ErrorIs(t, err, domainbooking.ErrUnauthorized)

	stored, err := fx.bookings.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusPending, stored.Status)
}

func TestApproveUnknownBooking(t *testing.T) {
	fx := newReserveFixture(t)

	h := &ApproveBookingHandler{UoWFactory: fx.handler.UoWFactory, Outbox: fx.outbox}
	_, err := h.Handle(context.Background(), ApproveBookingCommand{BookingID: "bkg-missing", Actor: adminActor})
	assert.ErrorIs(t, err, domainbooking.ErrBookingNotFound)
}

func TestRejectBooking(t *testing.T) {
	fx := newReserveFixture(t)
	reservePending(t, fx, "bkg-1")

	h := &RejectBookingHandler{UoWFactory: fx.handler.UoWFactory, Outbox: fx.outbox}
	res, err := h.Handle(context.Background(), RejectBookingCommand{BookingID: "bkg-1", Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, string(domainbooking.StatusRejected), res.Status)

	// The rejected booking no longer blocks the calendar.
	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-2", 10, 13, 2))
	assert.NoError(t, err)
}

func TestRejectNonPending(t *testing.T) {
	fx := newReserveFixture(t)
	reservePending(t, fx, "bkg-1")

	approve := &ApproveBookingHandler{UoWFactory: fx.handler.UoWFactory, Outbox: fx.outbox}
	_, err := approve.Handle(context.Background(), ApproveBookingCommand{BookingID: "bkg-1", Actor: adminActor})
	require.NoError(t, err)

	reject := &RejectBookingHandler{UoWFactory: fx.handler.UoWFactory, Outbox: fx.outbox}
	_, err = reject.Handle(context.Background(), RejectBookingCommand{BookingID: "bkg-1", Actor: adminActor})
	assert.ErrorIs(t, err, domainbooking.ErrInvalidTransition)

	stored, err := fx.bookings.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusConfirmed, stored.Status)
	assert.WithinDuration(t, time.Now().UTC(), stored.UpdatedAt, time.Minute)
}
