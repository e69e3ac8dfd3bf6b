package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
	domainrange "tripnest/internal/domain/shared/daterange"
)

// ListingRepository is an in-memory listing store for local runs and
// tests.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlistings.ListingID]domainlistings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{items: make(map[domainlistings.ListingID]domainlistings.Listing)}
}

// ByID returns a listing or listings.ErrListingNotFound.
func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.items[id]
	if !ok {
		return nil, domainlistings.ErrListingNotFound
	}
	cp := listing
	return &cp, nil
}

// Save stores or updates a listing entry.
func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[listing.ID] = *listing
	return nil
}

// Delete removes a listing; deliberately tolerant of absent IDs so the
// surrounding system's cascade path stays idempotent.
func (r *ListingRepository) Delete(ctx context.Context, id domainlistings.ListingID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// BookingRepository keeps bookings in memory. Reservation atomicity is
// provided by the per-listing lock held around the engine's check+insert,
// not by this store.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	cp := record
	return &cp, nil
}

func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.Version++
	// Pending events belong to the in-flight aggregate, not the stored
	// record; persisting them would re-deliver on the next load.
	cp := *booking
	cp.ClearEvents()
	r.items[booking.ID] = cp
	return nil
}

func (r *BookingRepository) AnyOverlapping(ctx context.Context, listingID domainlistings.ListingID, dr domainrange.DateRange) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.items {
		if record.ListingID != listingID {
			continue
		}
		if !record.Status.HoldsCalendar() {
			continue
		}
		if record.Range.Overlaps(dr) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, record := range r.items {
		if record.UserID != userID {
			continue
		}
		cp := record
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0, len(r.items))
	for _, record := range r.items {
		cp := record
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(items []*domainbooking.Booking) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
