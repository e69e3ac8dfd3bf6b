package me

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tripnest/internal/app/dto"
	handlersupport "tripnest/internal/app/handlers/support"
	"tripnest/internal/app/queries"
	"tripnest/internal/app/uow"
	domainlistings "tripnest/internal/domain/listings"
)

const listMyBookingsKey = "me.bookings.list"

type ListMyBookingsQuery struct {
	UserID string
}

func (q ListMyBookingsQuery) Key() string { return listMyBookingsKey }

// ListMyBookingsHandler returns a user's bookings newest first, each
// joined with a listing snapshot. A deleted listing degrades to an empty
// snapshot rather than failing the whole page.
type ListMyBookingsHandler struct {
	UoWFactory uow.Factory
	Logger     *slog.Logger
}

func (h *ListMyBookingsHandler) Handle(ctx context.Context, q ListMyBookingsQuery) (dto.BookingCollection, error) {
	userID := strings.TrimSpace(q.UserID)
	if userID == "" {
		return dto.BookingCollection{}, errors.New("user id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Bookings().ListByUser(execCtx, userID)
	if err != nil {
		return dto.BookingCollection{}, err
	}

	cache := make(map[domainlistings.ListingID]*domainlistings.Listing)
	items := make([]dto.BookingSummary, 0, len(bookings))
	for _, record := range bookings {
		listing, ok := cache[record.ListingID]
		if !ok {
			listing, err = unit.Listings().ByID(execCtx, record.ListingID)
			if err != nil {
				if !errors.Is(err, domainlistings.ErrListingNotFound) {
					return dto.BookingCollection{}, err
				}
				if h.Logger != nil {
					h.Logger.Warn("listing missing for booking", "booking_id", record.ID, "listing_id", record.ListingID)
				}
				listing = nil
			}
			cache[record.ListingID] = listing
		}
		items = append(items, dto.MapBookingSummary(record, listing))
	}

	if h.Logger != nil {
		h.Logger.Debug("user bookings listed", "user_id", userID, "count", len(items))
	}

	return dto.BookingCollection{Items: items}, nil
}

var _ queries.Handler[ListMyBookingsQuery, dto.BookingCollection] = (*ListMyBookingsHandler)(nil)
