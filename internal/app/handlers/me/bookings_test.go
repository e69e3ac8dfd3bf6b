package me

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/daterange"
	"tripnest/internal/domain/shared/money"
	"tripnest/internal/infra/storage/memory"
)

func seedBooking(t *testing.T, repo *memory.BookingRepository, id, user, listing string, createdAt time.Time) {
	t.Helper()
	dr, err := daterange.New(createdAt.AddDate(0, 1, 0), createdAt.AddDate(0, 1, 3))
	require.NoError(t, err)
	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(id),
		ListingID: domainlistings.ListingID(listing),
		UserID:    user,
		Range:     dr,
		Guests:    2,
		Total:     money.Must(30000, "USD"),
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	b.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), b))
}

func TestListMyBookings(t *testing.T) {
	listingsRepo := memory.NewListingRepository()
	bookingsRepo := memory.NewBookingRepository()

	require.NoError(t, listingsRepo.Save(context.Background(), &domainlistings.Listing{
		ID:          "lst-1",
		Title:       "Harbour loft",
		Location:    "Bergen",
		Country:     "Norway",
		NightlyRate: money.Must(10000, "USD"),
	}))

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	seedBooking(t, bookingsRepo, "bkg-old", "usr-1", "lst-1", base)
	seedBooking(t, bookingsRepo, "bkg-new", "usr-1", "lst-1", base.Add(48*time.Hour))
	seedBooking(t, bookingsRepo, "bkg-other", "usr-2", "lst-1", base.Add(time.Hour))

	h := &ListMyBookingsHandler{
		UoWFactory: memory.Factory{ListingsRepo: listingsRepo, BookingsRepo: bookingsRepo},
	}

	res, err := h.Handle(context.Background(), ListMyBookingsQuery{UserID: "usr-1"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "bkg-new", res.Items[0].ID)
	assert.Equal(t, "bkg-old", res.Items[1].ID)
	assert.Equal(t, "Harbour loft", res.Items[0].Listing.Title)
	assert.Equal(t, 3, res.Items[0].Nights)
	assert.Equal(t, int64(30000), res.Items[0].Total.Amount)
}

func TestListMyBookingsTolerantOfDeletedListing(t *testing.T) {
	listingsRepo := memory.NewListingRepository()
	bookingsRepo := memory.NewBookingRepository()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	seedBooking(t, bookingsRepo, "bkg-1", "usr-1", "lst-gone", base)

	h := &ListMyBookingsHandler{
		UoWFactory: memory.Factory{ListingsRepo: listingsRepo, BookingsRepo: bookingsRepo},
	}

	res, err := h.Handle(context.Background(), ListMyBookingsQuery{UserID: "usr-1"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	snapshot := res.Items[0].Listing
	assert.Equal(t, "lst-gone", snapshot.ID)
	assert.Empty(t, snapshot.Title)
}

func TestListMyBookingsRequiresUser(t *testing.T) {
	h := &ListMyBookingsHandler{
		UoWFactory: memory.Factory{
			ListingsRepo: memory.NewListingRepository(),
			BookingsRepo: memory.NewBookingRepository(),
		},
	}
	_, err := h.Handle(context.Background(), ListMyBookingsQuery{UserID: "  "})
	assert.Error(t, err)
}

func TestListMyBookingsEmpty(t *testing.T) {
	h := &ListMyBookingsHandler{
		UoWFactory: memory.Factory{
			ListingsRepo: memory.NewListingRepository(),
			BookingsRepo: memory.NewBookingRepository(),
		},
	}
	res, err := h.Handle(context.Background(), ListMyBookingsQuery{UserID: "usr-1"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}
