package admin

import (
	"context"
	"errors"
	"log/slog"

	"tripnest/internal/app/auth"
	"tripnest/internal/app/dto"
	handlersupport "tripnest/internal/app/handlers/support"
	"tripnest/internal/app/queries"
	"tripnest/internal/app/uow"
	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
)

const listAllBookingsKey = "admin.bookings.list"

type ListAllBookingsQuery struct {
	Actor auth.Principal
}

func (q ListAllBookingsQuery) Key() string { return listAllBookingsKey }

// ListAllBookingsHandler backs the admin panel: every booking with its
// listing snapshot, newest first.
type ListAllBookingsHandler struct {
	UoWFactory uow.Factory
	Logger     *slog.Logger
}

func (h *ListAllBookingsHandler) Handle(ctx context.Context, q ListAllBookingsQuery) (dto.BookingCollection, error) {
	if !q.Actor.IsAdmin() {
		return dto.BookingCollection{}, domainbooking.ErrUnauthorized
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Bookings().ListAll(execCtx)
	if err != nil {
		return dto.BookingCollection{}, err
	}

	cache := make(map[domainlistings.ListingID]*domainlistings.Listing)
	items := make([]dto.BookingSummary, 0, len(bookings))
	for _, record := range bookings {
		listing, ok := cache[record.ListingID]
		if !ok {
			listing, err = unit.Listings().ByID(execCtx, record.ListingID)
			if err != nil && !errors.Is(err, domainlistings.ErrListingNotFound) {
				return dto.BookingCollection{}, err
			}
			cache[record.ListingID] = listing
		}
		items = append(items, dto.MapBookingSummary(record, listing))
	}

	if h.Logger != nil {
		h.Logger.Debug("admin bookings listed", "actor", q.Actor.UserID, "count", len(items))
	}

	return dto.BookingCollection{Items: items}, nil
}

var _ queries.Handler[ListAllBookingsQuery, dto.BookingCollection] = (*ListAllBookingsHandler)(nil)
