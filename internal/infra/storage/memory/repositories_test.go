package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "tripnest/internal/domain/booking"
	"tripnest/internal/domain/shared/daterange"
	"tripnest/internal/domain/shared/money"
)

func newBookingWithEvents(t *testing.T) *domainbooking.Booking {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        "bkg-1",
		ListingID: "lst-1",
		UserID:    "usr-1",
		Range:     dr,
		Guests:    2,
		Total:     money.Must(30000, "USD"),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return b
}

func TestBookingSaveDoesNotPersistPendingEvents(t *testing.T) {
	repo := NewBookingRepository()
	b := newBookingWithEvents(t)
	require.NotEmpty(t, b.PendingEvents())

	require.NoError(t, repo.Save(context.Background(), b))

	// The in-flight aggregate keeps its events for the caller to drain.
	assert.NotEmpty(t, b.PendingEvents())

	// The stored record does not: a later load followed by a transition
	// must record only the transition's own event.
	loaded, err := repo.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.PendingEvents())

	require.NoError(t, loaded.Approve(time.Now().UTC()))
	pending := loaded.PendingEvents()
	require.Len(t, pending, 1)
	assert.Equal(t, "booking.approved", pending[0].EventName())
}

func TestBookingSaveIncrementsVersion(t *testing.T) {
	repo := NewBookingRepository()
	b := newBookingWithEvents(t)

	require.NoError(t, repo.Save(context.Background(), b))
	assert.Equal(t, int64(1), b.Version)

	require.NoError(t, repo.Save(context.Background(), b))
	loaded, err := repo.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Version)
}
