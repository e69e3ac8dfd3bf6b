package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
	domainpricing "tripnest/internal/domain/pricing"
	"tripnest/internal/domain/shared/money"
	"tripnest/internal/infra/storage/memory"
)

type reserveFixture struct {
	handler  *ReserveBookingHandler
	listings *memory.ListingRepository
	bookings *memory.BookingRepository
	outbox   *memory.Outbox
}

func newReserveFixture(t *testing.T) *reserveFixture {
	t.Helper()
	listingsRepo := memory.NewListingRepository()
	bookingsRepo := memory.NewBookingRepository()
	box := memory.NewOutbox()

	require.NoError(t, listingsRepo.Save(context.Background(), &domainlistings.Listing{
		ID:          "lst-1",
		Owner:       "usr-owner",
		Title:       "Cabin by the lake",
		NightlyRate: money.Must(10000, "USD"),
		CreatedAt:   time.Now().UTC(),
	}))

	return &reserveFixture{
		handler: &ReserveBookingHandler{
			UoWFactory: memory.Factory{ListingsRepo: listingsRepo, BookingsRepo: bookingsRepo},
			Pricing:    domainpricing.NightlyCalculator{},
			Outbox:     box,
			Locks:      NewListingLocks(),
			MaxGuests:  20,
		},
		listings: listingsRepo,
		bookings: bookingsRepo,
		outbox:   box,
	}
}

func futureDate(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}

func reserveCmd(id string, checkInDays, checkOutDays, guests int) ReserveBookingCommand {
	return ReserveBookingCommand{
		CommandID: id,
		ListingID: "lst-1",
		UserID:    "usr-guest",
		CheckIn:   futureDate(checkInDays),
		CheckOut:  futureDate(checkOutDays),
		Guests:    guests,
	}
}

func TestReserveSuccess(t *testing.T) {
	fx := newReserveFixture(t)

	res, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", 10, 13, 2))
	require.NoError(t, err)

	assert.Equal(t, "bkg-1", res.BookingID)
	assert.Equal(t, string(domainbooking.StatusPending), res.Status)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, int64(30000), res.Total)
	assert.Equal(t, "USD", res.Currency)

	stored, err := fx.bookings.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusPending, stored.Status)
	assert.Equal(t, int64(30000), stored.Total.Amount)
	assert.Empty(t, stored.PendingEvents(), "events must be drained into the outbox")

	records := fx.outbox.Pending()
	require.Len(t, records, 1)
	assert.Equal(t, "booking.requested", records[0].Name)
	assert.Equal(t, "bkg-1", records[0].Aggregate)
}

func TestReserveUnknownListing(t *testing.T) {
	fx := newReserveFixture(t)

	cmd := reserveCmd("bkg-1", 10, 12, 2)
	cmd.ListingID = "lst-missing"
	_, err := fx.handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domainlistings.ErrListingNotFound)
}

func TestReserveInvalidRange(t *testing.T) {
	fx := newReserveFixture(t)

	_, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", 13, 10, 2))
	assert.Error(t, err)

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-2", 10, 10, 2))
	assert.Error(t, err)
}

func TestReservePastDatePolicy(t *testing.T) {
	fx := newReserveFixture(t)

	_, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", -5, -2, 2))
	assert.ErrorIs(t, err, domainbooking.ErrPastDate)

	fx.handler.AllowPastDates = true
	res, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-2", -5, -2, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Nights)
}

func TestReserveGuestBounds(t *testing.T) {
	fx := newReserveFixture(t)

	_, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", 10, 12, 0))
	assert.ErrorIs(t, err, domainbooking.ErrInvalidGuestCount)

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-2", 10, 12, 21))
	assert.ErrorIs(t, err, domainbooking.ErrInvalidGuestCount)

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-3", 10, 12, 20))
	assert.NoError(t, err)
}

func TestReserveOverlapRejected(t *testing.T) {
	fx := newReserveFixture(t)

	_, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", 10, 15, 2))
	require.NoError(t, err)

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-2", 12, 14, 2))
	assert.ErrorIs(t, err, domainbooking.ErrUnavailable)

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-3", 8, 11, 2))
	assert.ErrorIs(t, err, domainbooking.ErrUnavailable)
}

func TestReserveBackToBackStaysAllowed(t *testing.T) {
	fx := newReserveFixture(t)

	_, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", 10, 13, 2))
	require.NoError(t, err)

	// Checkout day equals the next checkin day: no shared night.
	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-2", 13, 15, 2))
	assert.NoError(t, err)

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-3", 8, 10, 2))
	assert.NoError(t, err)
}

func TestReserveAfterReleaseSucceeds(t *testing.T) {
	fx := newReserveFixture(t)

	_, err := fx.handler.Handle(context.Background(), reserveCmd("bkg-1", 10, 13, 2))
	require.NoError(t, err)

	held, err := fx.bookings.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	require.NoError(t, held.Reject(time.Now().UTC()))
	require.NoError(t, fx.bookings.Save(context.Background(), held))

	_, err = fx.handler.Handle(context.Background(), reserveCmd("bkg-2", 10, 13, 2))
	assert.NoError(t, err)
}

func TestReserveConcurrentSameRange(t *testing.T) {
	fx := newReserveFixture(t)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd := reserveCmd(fmt.Sprintf("bkg-%d", i), 10, 13, 2)
			cmd.UserID = fmt.Sprintf("usr-%d", i)
			_, errs[i] = fx.handler.Handle(context.Background(), cmd)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, domainbooking.ErrUnavailable)
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one reservation may win the range")
	assert.Equal(t, attempts-1, lost)
}
